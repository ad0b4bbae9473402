package method

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/linecard/ingest/cmd/cli/param"
	"github.com/linecard/ingest/cmd/handler"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// Invoke runs a single synthetic API Gateway request through the Lambda handler
// and prints the response.
func Invoke(ctx context.Context, p *param.Invoke, stdin io.Reader, stdout io.Writer) error {
	body, err := readBody(p, stdin)
	if err != nil {
		return err
	}

	event := events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/",
		Body:       body,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: uuid.NewString(),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  p.SourceIp,
				UserAgent: p.UserAgent,
			},
		},
	}

	if p.Base64 && body != "" {
		event.Body = base64.StdEncoding.EncodeToString([]byte(body))
		event.IsBase64Encoded = true
	}

	response, err := handler.Handler(ctx, event)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func readBody(p *param.Invoke, stdin io.Reader) (string, error) {
	switch {
	case p.Data != "" && p.File != "":
		return "", fmt.Errorf("--data and --file are mutually exclusive")

	case p.File == "-":
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil

	case p.File != "":
		content, err := os.ReadFile(p.File)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", p.File, err)
		}
		return string(content), nil
	}

	return p.Data, nil
}
