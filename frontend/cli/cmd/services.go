package cmd

import (
	"context"

	"github.com/spf13/afero"

	"github.com/furisto/ask/backend/dialog"
	"github.com/furisto/ask/shared"
	"github.com/furisto/ask/shared/config"
)

type ContextKey string

const (
	ContextKeyFileSystem    ContextKey = "filesystem"
	ContextKeyCommandRunner ContextKey = "command_runner"
	ContextKeyRuntimeInfo   ContextKey = "runtime_info"
	ContextKeyUserInfo      ContextKey = "user_info"
	ContextKeyGlobalOptions ContextKey = "global_options"
	ContextKeyConfigStore   ContextKey = "config_store"
	ContextKeySurface       ContextKey = "surface"
)

func getFileSystem(ctx context.Context) *afero.Afero {
	fs := ctx.Value(ContextKeyFileSystem)
	if fs != nil {
		return fs.(*afero.Afero)
	}

	return &afero.Afero{Fs: afero.NewOsFs()}
}

func getCommandRunner(ctx context.Context) shared.CommandRunner {
	runner := ctx.Value(ContextKeyCommandRunner)
	if runner != nil {
		return runner.(shared.CommandRunner)
	}

	return &shared.DefaultCommandRunner{}
}

func getRuntimeInfo(ctx context.Context) shared.RuntimeInfo {
	runtimeInfo := ctx.Value(ContextKeyRuntimeInfo)
	if runtimeInfo != nil {
		return runtimeInfo.(shared.RuntimeInfo)
	}

	return &shared.DefaultRuntimeInfo{}
}

func getUserInfo(ctx context.Context) shared.UserInfo {
	userInfo := ctx.Value(ContextKeyUserInfo)
	if userInfo != nil {
		return userInfo.(shared.UserInfo)
	}

	return shared.NewDefaultUserInfo(getFileSystem(ctx))
}

// getSurface returns a surface injected by tests; nil means the configured
// one is used.
func getSurface(ctx context.Context) dialog.Surface {
	if surface, ok := ctx.Value(ContextKeySurface).(dialog.Surface); ok {
		return surface
	}
	return nil
}

func setGlobalOptions(ctx context.Context, options *globalOptions) context.Context {
	return context.WithValue(ctx, ContextKeyGlobalOptions, options)
}

func getGlobalOptions(ctx context.Context) *globalOptions {
	if opts, ok := ctx.Value(ContextKeyGlobalOptions).(*globalOptions); ok {
		return opts
	}
	return &globalOptions{}
}

func getConfigStore(ctx context.Context) *config.Store {
	if configStore := ctx.Value(ContextKeyConfigStore); configStore != nil {
		return configStore.(*config.Store)
	}

	// should never happen, indicates a programming error
	panic("config store not found")
}

func setConfigStore(ctx context.Context, configStore *config.Store) context.Context {
	return context.WithValue(ctx, ContextKeyConfigStore, configStore)
}
