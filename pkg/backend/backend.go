package backend

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/author-analysis/gateway/internal"
	"github.com/author-analysis/gateway/pkg/models"
)

var log = internal.GetLogger()

// Backend is implemented by each analysis system the gateway wraps.
type Backend interface {
	Name() string
	// Validate reports whether request has the shape Process expects. It must not
	// block and must not start any external work.
	Validate(request any) bool
	// Process handles a request that passed Validate. It returns the response
	// object, or an error from the models error taxonomy.
	Process(ctx context.Context, request any) (any, error)
}

// Wrapper guarantees that no request reaches a Backend's Process unless it passed
// the backend's Validate, and turns every outcome into a single Future value.
type Wrapper struct {
	backend Backend
}

func NewWrapper(b Backend) *Wrapper {
	return &Wrapper{backend: b}
}

func (w *Wrapper) Name() string {
	return w.backend.Name()
}

// HandleRequest validates request synchronously. Invalid requests return a Future
// already resolved with "Invalid input". Valid requests are processed on their own
// goroutine and the Future resolves once, with either the response object or one
// of the client error strings.
func (w *Wrapper) HandleRequest(ctx context.Context, request any) *Future {
	f := newFuture()
	logger := log.WithField("backend", w.backend.Name())

	if !w.validate(request) {
		logger.Debug("rejected request with invalid shape")
		f.resolve(models.InvalidInputMessage)
		return f
	}

	go func() {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("backend panicked: %v", r)
				f.resolve(models.ProcessingErrorMessage)
			}
		}()

		out, err := w.backend.Process(ctx, request)
		if err != nil {
			logRequestError(logger, err)
			f.resolve(models.ClientMessage(err))
			return
		}

		logger.Debugf("request processed in %s", time.Since(start))
		f.resolve(out)
	}()

	return f
}

func (w *Wrapper) validate(request any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("%s validator panicked: %v", w.backend.Name(), r)
			ok = false
		}
	}()
	return w.backend.Validate(request)
}

func logRequestError(logger *logrus.Entry, err error) {
	if models.ClientMessage(err) == models.ProcessingErrorMessage {
		logger.Error(err)
		return
	}
	logger.Info(err)
}
