// Package cli 店面客户端的命令行界面
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wyfcoding/storefront/internal/storefront/application"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// Options 命令行依赖，零值字段使用默认实现
type Options struct {
	In        io.Reader
	Out       io.Writer
	Bootstrap Bootstrap
}

type app struct {
	opts       Options
	configPath string
	rt         *Runtime
}

func (a *app) session() *application.Session { return a.rt.Session }

// NewRootCommand 构建根命令
func NewRootCommand(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Bootstrap == nil {
		opts.Bootstrap = DefaultBootstrap
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the storefront catalog and manage your cart and wishlist",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.Bootstrap(cmd.Context(), a.configPath)
			if err != nil {
				return err
			}
			a.rt = rt
			if err := rt.Session.Start(cmd.Context()); err != nil {
				// 加载失败不影响后续操作，只提示
				logging.Warn(cmd.Context(), "session started with errors", "error", err)
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.rt == nil {
				return nil
			}
			return a.rt.Close()
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath(), "path to config file")

	root.AddCommand(
		a.categoriesCommand(),
		a.productsCommand(),
		a.productCommand(),
		a.cartCommand(),
		a.wishlistCommand(),
		a.checkoutCommand(),
		a.loginCommand(),
		a.registerCommand(),
		a.logoutCommand(),
		a.bannerCommand(),
		a.shellCommand(),
	)
	return root
}

// Execute 运行根命令，返回进程退出码
func Execute(ctx context.Context, opts Options) int {
	root := NewRootCommand(opts)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
		return 1
	}
	return 0
}

func defaultConfigPath() string {
	if p := os.Getenv("STOREFRONT_CONFIG"); p != "" {
		return p
	}
	return "configs/storefront/config.toml"
}
