package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// NewSSMClient builds a Parameter Store client from the default AWS
// credential chain.
func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// MergeSSM copies every parameter under path into cfg. Parameter names are
// turned into env style keys, so /solar-ops/prod/remote-api-url under
// /solar-ops/prod becomes REMOTE_API_URL. Keys already present in cfg win.
// It returns how many keys were added.
func MergeSSM(ctx context.Context, client ssm.GetParametersByPathAPIClient, path string, cfg map[string]string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	added := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return added, fmt.Errorf("read parameters under %s: %w", path, err)
		}
		for _, p := range page.Parameters {
			key := envKey(path, aws.ToString(p.Name))
			if key == "" {
				continue
			}
			if _, ok := cfg[key]; ok {
				continue
			}
			cfg[key] = aws.ToString(p.Value)
			added++
		}
	}
	log.Info().Str("path", path).Int("added", added).Msg("Merged SSM parameters")
	return added, nil
}

func envKey(path, name string) string {
	name = strings.TrimPrefix(name, strings.TrimSuffix(path, "/"))
	name = strings.Trim(name, "/")
	r := strings.NewReplacer("/", "_", "-", "_", ".", "_")
	return strings.ToUpper(r.Replace(name))
}
