package view

import (
	"fmt"
	"strings"

	"github.com/linecard/ingest/pkg/service/identity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/golang-module/carbon/v2"
)

type CheckView struct {
	Caller   identity.Caller
	Table    types.TableDescription
	Endpoint string
}

func (c CheckView) Text() string {
	var b strings.Builder

	created := "unknown"
	if c.Table.CreationDateTime != nil {
		created = carbon.CreateFromStdTime(*c.Table.CreationDateTime).DiffForHumans()
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = "default"
	}

	fmt.Fprintf(&b, "caller:   %s (%s)\n", c.Caller.Arn, c.Caller.Account)
	fmt.Fprintf(&b, "endpoint: %s\n", endpoint)
	fmt.Fprintf(&b, "table:    %s\n", aws.ToString(c.Table.TableName))
	fmt.Fprintf(&b, "status:   %s\n", c.Table.TableStatus)
	fmt.Fprintf(&b, "items:    %d\n", aws.ToInt64(c.Table.ItemCount))
	fmt.Fprintf(&b, "created:  %s\n", created)

	return b.String()
}
