package identity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type StsClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type Caller struct {
	Account string
	Arn     string
	UserId  string
}

type Client struct {
	Sts StsClient
}

type Service struct {
	Client Client
}

func FromClients(stsClient StsClient) Service {
	return Service{
		Client: Client{
			Sts: stsClient,
		},
	}
}

func (s Service) Caller(ctx context.Context) (Caller, error) {
	out, err := s.Client.Sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Caller{}, err
	}

	return Caller{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserId:  aws.ToString(out.UserId),
	}, nil
}
