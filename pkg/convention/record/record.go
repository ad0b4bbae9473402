package record

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Attribute names as stored in the table.
const (
	KeyId    = "id"
	KeyYear  = "year"
	KeyTitle = "title"
)

// Placeholder values written when a request arrives without a payload.
const (
	DefaultYear  = 2012
	DefaultTitle = "The Amazing Spider-Man 2"
)

type Record struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Title string `json:"title"`
}

// Default returns the placeholder record under a freshly generated v4 UUID.
func Default() Record {
	return Record{
		ID:    uuid.NewString(),
		Year:  DefaultYear,
		Title: DefaultTitle,
	}
}

// Attributes renders the record as an explicitly typed DynamoDB item.
func (r Record) Attributes() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		KeyId:    &types.AttributeValueMemberS{Value: r.ID},
		KeyYear:  &types.AttributeValueMemberN{Value: strconv.Itoa(r.Year)},
		KeyTitle: &types.AttributeValueMemberS{Value: r.Title},
	}
}
