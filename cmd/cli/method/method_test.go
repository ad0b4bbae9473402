package method

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/linecard/ingest/cmd/cli/param"
	"github.com/linecard/ingest/cmd/handler"
	"github.com/linecard/ingest/pkg/convention/config"
	"github.com/linecard/ingest/pkg/convention/ingest"
	"github.com/linecard/ingest/pkg/convention/record"
	clientmock "github.com/linecard/ingest/pkg/mock/client"
	servicemock "github.com/linecard/ingest/pkg/mock/service"
	"github.com/linecard/ingest/pkg/sdk"
	"github.com/linecard/ingest/pkg/service/identity"
	"github.com/linecard/ingest/pkg/service/table"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var cfg = config.Config{Table: config.Table{Name: "movies"}}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	matrix := record.Record{ID: "42", Year: 1999, Title: "The Matrix"}

	tests := []struct {
		name  string
		setup func(*servicemock.MockTableService)
		req   func() *http.Request
		test  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "POST /items stores the record.",
			setup: func(mts *servicemock.MockTableService) {
				mts.On("Put", mock.Anything, "movies", matrix.Attributes()).Return(nil)
			},
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"id":"42","year":1999,"title":"The Matrix"}`))
			},
			test: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, `{"message":"Successfully inserted data!","id":"42"}`, w.Body.String())
				assert.NotEmpty(t, w.Header().Get(requestIdHeader))
			},
		},
		{
			name: "PUT /items with an empty body stores the default record.",
			setup: func(mts *servicemock.MockTableService) {
				mts.On("Put", mock.Anything, "movies", mock.Anything).Return(nil)
			},
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPut, "/items", nil)
				req.Header.Set(requestIdHeader, "given-id")
				return req
			},
			test: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, "given-id", w.Header().Get(requestIdHeader))
			},
		},
		{
			name: "POST /items maps a missing field to 400.",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"id":"42"}`))
			},
			test: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body map[string]string

				assert.Equal(t, http.StatusBadRequest, w.Code)
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "MissingField", body["error"])
			},
		},
		{
			name: "POST /items maps store failures to 502.",
			setup: func(mts *servicemock.MockTableService) {
				mts.On("Put", mock.Anything, "movies", mock.Anything).Return(fmt.Errorf("unreachable"))
			},
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"id":"42","year":1999,"title":"The Matrix"}`))
			},
			test: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadGateway, w.Code)
				assert.Contains(t, w.Body.String(), "StoreUnavailable")
			},
		},
		{
			name: "GET /healthz reports ok.",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/healthz", nil)
			},
			test: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
			},
		},
		{
			name: "unknown routes are 404.",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/nope", nil)
			},
			test: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, w.Code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mts := &servicemock.MockTableService{}
			if tc.setup != nil {
				tc.setup(mts)
			}

			api := sdk.API{
				Conventions: sdk.Conventions{Ingest: ingest.FromServices(cfg, mts)},
				Config:      cfg,
			}

			w := httptest.NewRecorder()
			NewRouter(api).ServeHTTP(w, tc.req())

			tc.test(t, w)
			mts.AssertExpectations(t)
		})
	}
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	t.Setenv(config.EnvTableName, "movies")
	t.Setenv(config.EnvDynamoEndpoint, "")

	mdc := &clientmock.MockDynamoClient{}
	mdc.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		return in.Item["id"].(*types.AttributeValueMemberS).Value == "42"
	})).Return(&dynamodb.PutItemOutput{}, nil)

	handler.Use(sdk.API{Services: sdk.Services{Table: table.FromClients(mdc)}})

	t.Run("invokes with inline data", func(t *testing.T) {
		var out bytes.Buffer
		var response events.APIGatewayProxyResponse

		err := Invoke(ctx, &param.Invoke{Data: `{"id":"42","year":1999,"title":"The Matrix"}`}, nil, &out)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(out.Bytes(), &response))
		assert.Equal(t, handler.Success(), response)
	})

	t.Run("invokes with base64 stdin", func(t *testing.T) {
		var out bytes.Buffer

		stdin := strings.NewReader(`{"id":"42","year":"1999","title":"The Matrix"}`)
		err := Invoke(ctx, &param.Invoke{File: "-", Base64: true}, stdin, &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Successfully inserted data!")
	})

	t.Run("returns handler errors", func(t *testing.T) {
		var out bytes.Buffer

		err := Invoke(ctx, &param.Invoke{Data: `{"id":"42"`}, nil, &out)
		assert.ErrorIs(t, err, record.ErrMalformedInput)
		assert.Empty(t, out.String())
	})

	mdc.AssertNumberOfCalls(t, "PutItem", 2)
}

func TestReadBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"1"}`), 0o600))

	got, err := readBody(&param.Invoke{File: path}, nil)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, got)

	got, err = readBody(&param.Invoke{}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = readBody(&param.Invoke{Data: "{}", File: path}, nil)
	assert.Error(t, err)

	_, err = readBody(&param.Invoke{File: filepath.Join(dir, "missing.json")}, nil)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	msts := &clientmock.MockSTSClient{}
	msts.On("GetCallerIdentity", mock.Anything, &sts.GetCallerIdentityInput{}).Return(&sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/dev"),
		UserId:  aws.String("AIDAEXAMPLE"),
	}, nil)

	mdc := &clientmock.MockDynamoClient{}
	mdc.On("DescribeTable", mock.Anything, &dynamodb.DescribeTableInput{TableName: aws.String("movies")}).Return(&dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:        aws.String("movies"),
			TableStatus:      types.TableStatusActive,
			ItemCount:        aws.Int64(7),
			CreationDateTime: aws.Time(time.Now().Add(-2 * time.Hour)),
		},
	}, nil)

	api := sdk.API{
		Services: sdk.Services{
			Table:    table.FromClients(mdc),
			Identity: identity.FromClients(msts),
		},
		Config: cfg,
	}

	var out bytes.Buffer
	err := Check(ctx, api, &param.Check{}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "arn:aws:iam::123456789012:user/dev")
	assert.Contains(t, out.String(), "ACTIVE")
	assert.Contains(t, out.String(), "items:    7")
	msts.AssertExpectations(t)
	mdc.AssertExpectations(t)
}
