package pkg

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Handler runs the dragon query pipeline: build the expression, locate the
// object, select and drain it, wrap the records in a response.
type Handler struct {
	config   *Config
	builder  QueryBuilder
	params   *ParameterStore
	selector ObjectSelector
}

func NewHandler(c *Config, params *ParameterStore, selector ObjectSelector) *Handler {
	return &Handler{
		config:   c,
		builder:  NewQueryBuilder(c.DragonNameField),
		params:   params,
		selector: selector,
	}
}

// Query resolves the object location and returns the records matching the
// request parameters.
func (h *Handler) Query(ctx context.Context, log *logrus.Entry, queryParams map[string]string) (*SelectResult, error) {
	expression := h.builder.Build(queryParams)
	location, err := h.params.Locate(ctx, h.config.BucketParameter, h.config.KeyParameter)
	if err != nil {
		return nil, err
	}
	return SelectRecords(ctx, h.selector, location, expression, h.config.RequestProgress, LogObserver{Entry: log})
}

// HandleRequest is the lambda entry point for api gateway proxy events.
func (h *Handler) HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := logrus.WithField("requestId", req.RequestContext.RequestID)
	result, err := h.Query(ctx, log, req.QueryStringParameters)
	if err != nil {
		log.WithError(err).WithField("kind", ErrorKind(err)).Error("dragon query failed")
		if h.config.LegacyErrors {
			if errors.Is(err, ErrStream) {
				return NewResponse(nil)
			}
			return events.APIGatewayProxyResponse{}, err
		}
		return NewErrorResponse(err), nil
	}
	return NewResponse(result)
}

// ServeHTTP serves the same pipeline over plain http.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logrus.WithField("path", r.URL.Path)
	result, err := h.Query(r.Context(), log, FirstValues(r.URL.Query()))
	if err != nil {
		log.WithError(err).WithField("kind", ErrorKind(err)).Error("dragon query failed")
		if h.config.LegacyErrors {
			if errors.Is(err, ErrStream) {
				render.JSON(w, r, nil)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		render.Status(r, StatusFor(err))
		render.JSON(w, r, NewErrorBody(err))
		return
	}
	render.JSON(w, r, result.Records)
}
