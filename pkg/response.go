package pkg

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// ErrorBody is the diagnostic body of a failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  string `json:"code,omitempty"`
}

// StatusFor maps a pipeline error to the http status reported to the caller.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrSelect), errors.Is(err, ErrStream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NewErrorBody(err error) ErrorBody {
	return ErrorBody{Error: err.Error(), Kind: ErrorKind(err), Code: APIErrorCode(err)}
}

// NewResponse encodes the records as a json string. A nil result encodes as
// null.
func NewResponse(result *SelectResult) (events.APIGatewayProxyResponse, error) {
	var records *string
	if result != nil {
		records = &result.Records
	}
	body, err := json.Marshal(records)
	if err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrap(err, "encode response body")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    jsonHeaders,
		Body:       string(body),
	}, nil
}

func NewErrorResponse(err error) events.APIGatewayProxyResponse {
	// ErrorBody holds only strings, marshal cannot fail
	body, _ := json.Marshal(NewErrorBody(err))
	return events.APIGatewayProxyResponse{
		StatusCode: StatusFor(err),
		Headers:    jsonHeaders,
		Body:       string(body),
	}
}
