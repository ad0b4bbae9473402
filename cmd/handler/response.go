package handler

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

const SuccessMessage = "Successfully inserted data!"

const successBody = `{"message": "` + SuccessMessage + `"}`

func Success() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: successBody,
	}
}
