package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/wyfcoding/storefront/internal/storefront/application"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
)

const shellHelp = `commands:
  categories | category <name> | products | search [term]
  product <id> | add <id> | remove <id> | wish <id>
  cart | wishlist | checkout | order
  login <email> <password> | logout | help | quit`

// syncWriter 串行化 shell 循环与防抖回调的输出
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (a *app) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive storefront session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := &syncWriter{w: cmd.OutOrStdout()}
	sess := a.session()

	// 每次状态变更后刷新角标
	unsubscribe := sess.Subscribe(func(snap application.Snapshot) {
		RenderBadges(out, snap)
	})
	defer unsubscribe()

	debouncer := application.NewDebouncer(a.rt.Config.Search.Debounce)
	defer debouncer.Stop()

	fmt.Fprintln(out, domain.NewCarousel().Current())
	RenderBadges(out, sess.Snapshot())
	fmt.Fprintln(out, shellHelp)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		verb, rest := fields[0], fields[1:]
		arg := strings.Join(rest, " ")

		var err error
		switch verb {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "categories":
			RenderCategories(out, sess.Snapshot())
		case "category":
			if err = sess.SelectCategory(ctx, arg); err == nil {
				RenderProducts(out, sess.Snapshot())
			}
		case "products":
			RenderProducts(out, sess.Snapshot())
		case "search":
			term := arg
			debouncer.Trigger(func() {
				if err := sess.Search(ctx, term); err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					return
				}
				RenderProducts(out, sess.Snapshot())
			})
		case "product":
			err = a.shellProduct(cmd, out, arg)
		case "add":
			err = sess.AddToCart(ctx, domain.ProductID(arg))
		case "remove":
			err = sess.RemoveFromCart(ctx, domain.ProductID(arg))
		case "wish":
			_, err = sess.ToggleWishlist(ctx, domain.ProductID(arg))
		case "cart":
			RenderCart(out, sess.Snapshot())
		case "wishlist":
			RenderWishlist(out, sess.Snapshot())
		case "checkout":
			RenderCheckout(out, sess.Snapshot())
		case "order":
			var conf *domain.OrderConfirmation
			if conf, err = sess.PlaceOrder(ctx); err == nil {
				RenderOrder(out, conf)
			}
		case "login":
			if len(rest) != 2 {
				err = fmt.Errorf("%w: usage: login <email> <password>", domain.ErrValidation)
				break
			}
			if err = sess.Login(ctx, rest[0], rest[1]); err == nil {
				fmt.Fprintln(out, "Login successful!")
			}
		case "logout":
			if err = sess.Logout(ctx); err == nil {
				fmt.Fprintln(out, "Logged out successfully")
			}
		default:
			fmt.Fprintf(out, "unknown command %q, type help\n", verb)
		}
		if err != nil {
			logging.Debug(ctx, "shell command failed", "command", verb, "error", err)
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (a *app) shellProduct(cmd *cobra.Command, out io.Writer, arg string) error {
	id := domain.ProductID(arg)
	p, err := a.session().Product(cmd.Context(), id)
	if err != nil {
		return err
	}
	reviews, err := a.session().Reviews(cmd.Context(), id)
	if err != nil {
		fmt.Fprintf(out, "warning: failed to load reviews: %v\n", err)
	}
	RenderProductDetail(out, p, reviews)
	return nil
}
