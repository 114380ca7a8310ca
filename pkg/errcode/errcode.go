package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryError
	DBInsertError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Device errors
	CameraError
	CameraBusyError
	SerialPortError
	SerialReadError

	// AWS errors
	AWSConfigError

	// Object store errors
	UploadError

	// Sample store errors
	SampleStoreScanError
	SampleStorePutError
	SampleStoreCreateError

	// Inference errors
	DetectorError
	ClassifierError
	InferenceConfigError

	// Capture errors
	AllocateError
	PersistError
	BusyError

	// Server and broker errors
	ServerError
	BrokerError
)
