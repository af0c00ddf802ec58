package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// LoadSSM overlays SSM Parameter Store values found under prefix onto config.
// "/blog/prod/JWT_SECRET" under prefix "/blog/prod" becomes the key JWT_SECRET.
func LoadSSM(ctx context.Context, config map[string]string, prefix string) (int, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("load aws config: %w", err)
	}
	return loadParameters(ctx, ssm.NewFromConfig(awsCfg), config, prefix)
}

func loadParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, config map[string]string, prefix string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	applied := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return applied, fmt.Errorf("get parameters under %s: %w", prefix, err)
		}
		applied += applyParameters(config, prefix, page.Parameters)
	}
	return applied, nil
}

func applyParameters(config map[string]string, prefix string, params []types.Parameter) int {
	applied := 0
	for _, p := range params {
		name := aws.ToString(p.Name)
		key := strings.Trim(strings.TrimPrefix(name, prefix), "/")
		key = strings.ToUpper(strings.ReplaceAll(key, "/", "_"))
		if key == "" {
			continue
		}
		config[key] = aws.ToString(p.Value)
		applied++
	}
	return applied
}
