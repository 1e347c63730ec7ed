package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/author-analysis/gateway/pkg/backend"
	"github.com/author-analysis/gateway/pkg/models"
	"github.com/author-analysis/gateway/pkg/server/handlertools"
)

const (
	postOnlyMessage = "Requests should be performed through a POST request"
	notFoundMessage = "404 - Not found"
)

// BackendHandler decodes the request body, hands it to the wrapper and writes
// whatever the wrapper resolves to as JSON. Every outcome, including a body that
// is not JSON, is a 200 response; errors are JSON strings.
func BackendHandler(wrapper *backend.Wrapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.WithFields(logrus.Fields{
			"backend":    wrapper.Name(),
			"request_id": handlertools.RequestID(ctx),
		})

		var result any
		request, err := handlertools.DecodeJSON(r)
		if err != nil {
			logger.Debugf("unparsable request body: %v", err)
			result = models.InvalidInputMessage
		} else {
			result, err = wrapper.HandleRequest(ctx, request).Wait(ctx)
			if err != nil {
				logger.Infof("client went away before the result was ready: %v", err)
				return
			}
		}

		if err := handlertools.EncodeJSON(w, result); err != nil {
			logger.Errorf("unable to write response: %v", err)
		}
	}
}

// PostOnlyHandler answers GET requests on backend routes.
func PostOnlyHandler(w http.ResponseWriter, _ *http.Request) {
	handlertools.RenderText(w, http.StatusOK, postOnlyMessage)
}

// APINotFoundHandler answers unknown paths and methods under /api.
func APINotFoundHandler(w http.ResponseWriter, _ *http.Request) {
	handlertools.RenderText(w, http.StatusNotFound, notFoundMessage)
}
