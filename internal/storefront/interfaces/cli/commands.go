package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wyfcoding/storefront/internal/storefront/application"
	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

func (a *app) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			RenderCategories(cmd.OutOrStdout(), a.session().Snapshot())
			return nil
		},
	}
}

func (a *app) productsCommand() *cobra.Command {
	var category, search string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally filtered by category and search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if category != domain.AllCategories {
				if err := a.session().SelectCategory(ctx, category); err != nil {
					return err
				}
			}
			if search != "" {
				if err := a.session().Search(ctx, search); err != nil {
					return err
				}
			}
			RenderProducts(cmd.OutOrStdout(), a.session().Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", domain.AllCategories, "category name")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term (title or category)")
	return cmd
}

func (a *app) productCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show product details and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showProduct(cmd.Context(), cmd, domain.ProductID(args[0]))
		},
	}
}

func (a *app) showProduct(ctx context.Context, cmd *cobra.Command, id domain.ProductID) error {
	p, err := a.session().Product(ctx, id)
	if err != nil {
		return err
	}
	reviews, err := a.session().Reviews(ctx, id)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to load reviews: %v\n", err)
	}
	RenderProductDetail(cmd.OutOrStdout(), p, reviews)
	return nil
}

func (a *app) cartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			RenderCart(cmd.OutOrStdout(), a.session().Snapshot())
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id>",
			Short: "Add one unit of a product to the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.session().AddToCart(cmd.Context(), domain.ProductID(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Added to cart!")
				RenderBadges(cmd.OutOrStdout(), a.session().Snapshot())
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a product from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.session().RemoveFromCart(cmd.Context(), domain.ProductID(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Item removed from cart")
				RenderBadges(cmd.OutOrStdout(), a.session().Snapshot())
				return nil
			},
		},
	)
	return cmd
}

func (a *app) wishlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show the wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			RenderWishlist(cmd.OutOrStdout(), a.session().Snapshot())
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Add a product to the wishlist, or remove it if already present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.toggleWishlist(cmd, domain.ProductID(args[0]))
		},
	})
	return cmd
}

func (a *app) toggleWishlist(cmd *cobra.Command, id domain.ProductID) error {
	added, err := a.session().ToggleWishlist(cmd.Context(), id)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintln(cmd.OutOrStdout(), "Added to wishlist!")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Removed from wishlist!")
	}
	RenderBadges(cmd.OutOrStdout(), a.session().Snapshot())
	return nil
}

func (a *app) checkoutCommand() *cobra.Command {
	var place bool
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Show the order summary, and place the order with --place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			RenderCheckout(cmd.OutOrStdout(), a.session().Snapshot())
			if !place {
				return nil
			}
			conf, err := a.session().PlaceOrder(cmd.Context())
			if err != nil {
				return err
			}
			RenderOrder(cmd.OutOrStdout(), conf)
			return nil
		},
	}
	cmd.Flags().BoolVar(&place, "place", false, "place the order")
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in; cart and wishlist are then kept on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session().Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Login successful!")
			RenderBadges(cmd.OutOrStdout(), a.session().Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (a *app) registerCommand() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session().Register(cmd.Context(), name, email, password); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! Please login.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token and return to guest mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully")
			return nil
		},
	}
}

func (a *app) bannerCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "banner",
		Short: "Rotate the promotional banners until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			shown := 0
			application.RunBanner(ctx, domain.NewCarousel(), a.rt.Config.Banner.Interval, func(text string) {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				shown++
				if count > 0 && shown >= count {
					cancel()
				}
			})
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after n banners (0 = run until interrupted)")
	return cmd
}
