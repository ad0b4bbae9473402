package param

type GlobalOpts struct {
	Table    string `arg:"-t,--table,env:TABLE_NAME" help:"target table"`
	Endpoint string `arg:"-e,--endpoint,env:DYNAMODB_ENDPOINT" help:"DynamoDB endpoint override, e.g. DynamoDB Local"`
}

type Invoke struct {
	Data      string `arg:"-d,--data" help:"JSON body, omit to insert the default record"`
	File      string `arg:"-f,--file" help:"read the body from a file, - for stdin"`
	Base64    bool   `arg:"--base64" help:"deliver the body base64 encoded"`
	SourceIp  string `arg:"--source-ip" default:"127.0.0.1" help:"source ip reported to the handler"`
	UserAgent string `arg:"--user-agent" default:"ingest-cli" help:"user agent reported to the handler"`
}

type Serve struct {
	Listen string `arg:"-l,--listen,env:INGEST_LISTEN" default:"127.0.0.1:8080" help:"address to listen on"`
}

type Check struct{}
