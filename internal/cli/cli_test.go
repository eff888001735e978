package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeedTokenRejectsMalformedUser(t *testing.T) {
	var out bytes.Buffer
	cmd := &FeedTokenCmd{User: "not-a-uuid"}

	err := cmd.Run(&Context{Ctx: context.Background(), Log: zap.NewNop(), Out: &out})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")
	assert.Zero(t, out.Len())
}

func TestCommandsParse(t *testing.T) {
	var cli struct {
		Migrate        MigrateCmd        `cmd:""`
		MigrateVersion MigrateVersionCmd `cmd:"" name:"migrate-version"`
		FeedToken      FeedTokenCmd      `cmd:"" name:"feed-token"`
	}
	parser, err := kong.New(&cli)
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"feed-token", "--user", "1b4e28ba-2fa1-11d2-883f-0016d3cca427"})
	require.NoError(t, err)
	assert.Equal(t, "feed-token", kctx.Command())
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", cli.FeedToken.User)

	_, err = parser.Parse([]string{"feed-token"})
	assert.Error(t, err, "--user is required")

	kctx, err = parser.Parse([]string{"migrate-version"})
	require.NoError(t, err)
	assert.Equal(t, "migrate-version", kctx.Command())
}
