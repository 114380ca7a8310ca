package capture

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mpsense/sampler/pkg/area"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/mpsense/sampler/pkg/inference"
	"github.com/mpsense/sampler/pkg/nmea"
	"github.com/mpsense/sampler/pkg/sample"
)

// KeyLayout formats the capture time in object keys.
const KeyLayout = "20060102_150405"

// Controller runs captures one at a time.
type Controller struct {
	cfg      *config.Config
	camera   Camera
	objects  ObjectStore
	store    sample.Store
	alloc    *sample.Allocator
	analyzer Analyzer
	locator  Locator
	notifier Notifier
	recorder Recorder
	area     area.Area
	tmpDir   string
	now      func() time.Time

	// sem allows a single capture in flight
	sem chan struct{}
}

// Option configures optional collaborators of a Controller.
type Option func(*Controller)

// OptLocator sets the GPS acquirer. Without it every record gets the
// fallback location.
func OptLocator(l Locator) Option {
	return func(c *Controller) {
		c.locator = l
	}
}

// OptNotifier sets the receiver of persisted records.
func OptNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// OptRecorder sets the receiver of finished outcomes.
func OptRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// OptTempDir sets the directory where stills are staged before upload.
func OptTempDir(dir string) Option {
	return func(c *Controller) {
		c.tmpDir = dir
	}
}

// OptClock replaces time.Now.
func OptClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Controller. Camera, object store, sample store and analyzer
// are required.
func New(
	cfg *config.Config,
	camera Camera,
	objects ObjectStore,
	store sample.Store,
	analyzer Analyzer,
	opts ...Option,
) *Controller {
	res := &Controller{
		cfg:      cfg,
		camera:   camera,
		objects:  objects,
		store:    store,
		alloc:    sample.NewAllocator(store),
		analyzer: analyzer,
		recorder: noopRecorder{},
		area:     area.New(cfg.Area),
		now:      time.Now,
		sem:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Capture acquires, analyzes and persists one sample. A returned error
// is always accompanied by an Outcome in the Failed state.
func (c *Controller) Capture(ctx context.Context) (Outcome, error) {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return busy(), BusyError(ctx.Err())
	}
	defer func() { <-c.sem }()
	return c.run(ctx)
}

// TryCapture is Capture that does not wait: while another capture is in
// flight it returns BusyError at once.
func (c *Controller) TryCapture(ctx context.Context) (Outcome, error) {
	select {
	case c.sem <- struct{}{}:
	default:
		return busy(), BusyError(errInFlight)
	}
	defer func() { <-c.sem }()
	return c.run(ctx)
}

var errInFlight = errors.New("another capture is in flight")

func busy() Outcome {
	return Outcome{ID: uuid.New(), State: Failed, FailedAt: Idle}
}

func (c *Controller) run(ctx context.Context) (out Outcome, err error) {
	out = Outcome{ID: uuid.New(), State: Idle}
	log := slog.With("capture_id", out.ID.String())

	start := c.now()
	defer func() {
		out.Duration = c.now().Sub(start)
		if err != nil {
			out.FailedAt = out.State
			out.State = Failed
			log.Error("Capture failed",
				"failed_at", out.FailedAt.String(), "error", err)
		}
		c.recorder.Observe(out)
	}()

	out.State = Capturing
	handle, err := c.camera.Acquire(ctx)
	if err != nil {
		return out, CameraError(err)
	}
	defer func() {
		if cerr := handle.Close(); cerr != nil {
			log.Warn("Cannot release camera", "error", cerr)
		}
	}()

	ts := c.now()
	img, err := c.shoot(ctx, handle)
	if err != nil {
		return out, CameraError(err)
	}
	log.Info("Image captured", "size", humanize.Bytes(uint64(len(img))))

	out.State = Uploading
	key := ObjectKey(c.cfg.ObjectStore.Prefix, ts)
	imageURL, err := c.objects.Put(ctx, key, img, "image/jpeg")
	if err != nil {
		return out, UploadError(key, err)
	}
	log.Info("Image uploaded", "url", imageURL)

	out.State = Allocating
	id, err := c.alloc.Next(ctx)
	if err != nil {
		return out, AllocateError(err)
	}
	log = log.With("sample_id", id)

	out.State = Inferring
	in := sample.Input{
		SampleID: id,
		Time:     ts,
		ImageURL: imageURL,
		Fallback: c.area.Center,
	}
	var locErr error
	in.Inference, in.Fix, in.HasFix, locErr = c.analyzeAndLocate(
		ctx, imageURL, strconv.FormatInt(id, 10),
	)
	out.Degraded = degraded(log, in.Inference, in.HasFix, locErr, c.locating())
	if in.HasFix {
		c.checkArea(log, in.Fix)
	}

	out.State = Persisting
	rec, err := c.persist(ctx, log, in)
	if err != nil {
		return out, PersistError(rec.SampleID, err)
	}
	out.Record = rec
	out.State = Done

	if rec.SampleID != id {
		log = log.With("persisted_id", rec.SampleID)
	}
	log.Info("Sample persisted",
		"location", string(rec.LocationSource),
		"degraded", out.Degraded,
		"duration", gnfmt.TimeString(c.now().Sub(start).Seconds()),
	)

	if c.notifier != nil {
		if nerr := c.notifier.Notify(ctx, rec); nerr != nil {
			log.Warn("Cannot publish sample event", "error", nerr)
		}
	}
	return out, nil
}

// ObjectKey builds the object key of an image captured at ts.
func ObjectKey(prefix string, ts time.Time) string {
	return path.Join(prefix, "image_"+ts.Format(KeyLayout)+".jpg")
}

// shoot captures a still into a staging file and returns its bytes.
// The staging file is removed.
func (c *Controller) shoot(
	ctx context.Context,
	handle CameraHandle,
) ([]byte, error) {
	f, err := os.CreateTemp(c.tmpDir, "image_*.jpg")
	if err != nil {
		return nil, err
	}
	tmp := f.Name()
	f.Close()
	defer os.Remove(tmp)

	if err = handle.Capture(ctx, tmp); err != nil {
		return nil, err
	}
	img, err := os.ReadFile(tmp)
	if err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, errors.New("camera produced an empty image")
	}
	return img, nil
}

func (c *Controller) locating() bool {
	return c.locator != nil && !c.cfg.Capture.SkipLocation
}

// analyzeAndLocate runs inference and GPS acquisition concurrently.
// Neither can fail the capture.
func (c *Controller) analyzeAndLocate(
	ctx context.Context,
	imageURL, sampleID string,
) (inference.Result, nmea.Fix, bool, error) {
	var res inference.Result
	var fix nmea.Fix
	var hasFix bool
	var locErr error

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res = c.analyzer.Run(gCtx, imageURL, sampleID)
		return nil
	})
	if c.locating() {
		g.Go(func() error {
			fix, hasFix, locErr = c.locator.Locate(gCtx)
			return nil
		})
	}
	_ = g.Wait()

	return res, fix, hasFix, locErr
}

func (c *Controller) checkArea(log *slog.Logger, fix nmea.Fix) {
	p := area.Point{Latitude: fix.Latitude, Longitude: fix.Longitude}
	if c.area.Contains(p) {
		return
	}
	log.Warn("GPS fix is outside of the study area",
		"latitude", fix.Latitude,
		"longitude", fix.Longitude,
		"distance_km", c.area.DistanceFromCenter(p)/1000,
	)
}

// persist writes the record once. With the conditional ID strategy a
// taken ID is re-allocated and the write repeated.
func (c *Controller) persist(
	ctx context.Context,
	log *slog.Logger,
	in sample.Input,
) (sample.Record, error) {
	rec := sample.Build(in)
	if c.cfg.Capture.IDStrategy != "conditional" {
		return rec, c.store.Put(ctx, rec)
	}

	attempts := max(c.cfg.Capture.MaxIDAttempts, 1)
	var err error
	for i := range attempts {
		err = c.store.PutIfAbsent(ctx, rec)
		if !errors.Is(err, sample.ErrIDTaken) {
			return rec, err
		}
		if i == attempts-1 {
			break
		}
		log.Warn("Sample ID is taken, allocating again",
			"taken_id", in.SampleID, "attempt", i+1)
		if in.SampleID, err = c.alloc.Next(ctx); err != nil {
			return rec, err
		}
		rec = sample.Build(in)
		// inference ran with the first ID, its annotated image keeps it
		if rec.AnnotatedImageURL != nil {
			log.Warn("Annotated image is named after a different sample ID",
				"new_id", rec.SampleID,
				"annotated_image_url", *rec.AnnotatedImageURL,
			)
		}
	}
	return rec, err
}

func degraded(
	log *slog.Logger,
	res inference.Result,
	hasFix bool,
	locErr error,
	locating bool,
) []string {
	var out []string
	if res.Detect.Status == inference.Failed {
		out = append(out, DegradedStage1)
	}
	if res.Classify.Status == inference.Failed {
		out = append(out, DegradedStage2)
	}
	switch {
	case !locating || hasFix:
	case locErr != nil:
		log.Warn("GPS failed, using fallback location", "error", locErr)
		out = append(out, DegradedGPSError)
	default:
		log.Warn("No GPS fix in time, using fallback location")
		out = append(out, DegradedGPSTimeout)
	}
	return out
}
