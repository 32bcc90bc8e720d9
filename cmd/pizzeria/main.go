// Command pizzeria is the terminal storefront: browse the menu, build a
// cart, and place orders against the pizzeria backend. The admin subcommand
// doubles as the staff order console.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/obafemitayor/user-snack/internal/api"
	"github.com/obafemitayor/user-snack/internal/app"
	"github.com/obafemitayor/user-snack/internal/checkout"
	"github.com/obafemitayor/user-snack/internal/config"
	"github.com/obafemitayor/user-snack/internal/domain"
	"github.com/obafemitayor/user-snack/pkg/pagination"
)

const usage = `usage: pizzeria <command> [flags]

commands:
  menu                   list the pizza menu
  pizza <id>             show one pizza
  extras                 list available extras
  cart <subcommand>      manage the cart (add, list, qty, remove, clear)
  checkout               place an order with the current cart
  quick-order <pizza-id> order a single pizza without the cart
  login                  log in with email and password
  logout                 clear the stored session
  session                show the current session
  admin <subcommand>     staff order console (orders, order, status, serve)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command given")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "menu":
		return cmdMenu(ctx, a, rest)
	case "pizza":
		return cmdPizza(ctx, a, rest)
	case "extras":
		return cmdExtras(ctx, a)
	case "cart":
		return cmdCart(ctx, a, rest)
	case "checkout":
		return cmdCheckout(ctx, a, rest)
	case "quick-order":
		return cmdQuickOrder(ctx, a, rest)
	case "login":
		return cmdLogin(ctx, a, rest)
	case "logout":
		return a.Session.Clear(ctx)
	case "session":
		return cmdSession(ctx, a)
	case "admin":
		return cmdAdmin(ctx, a, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdMenu(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", a.Config.PageSize, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.API.ListPizzas(ctx, pagination.Params{Page: *page, Limit: *limit})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tDESCRIPTION")
	for _, p := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\n", p.ID, p.Name, p.Price, p.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d (%d pizzas)\n", result.Page, result.Pages, result.Total)
	return nil
}

func cmdPizza(ctx context.Context, a *app.App, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pizzeria pizza <id>")
	}
	p, err := a.API.GetPizza(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\t$%.2f\n%s\n", p.Name, p.Price, p.Description)
	return nil
}

func cmdExtras(ctx context.Context, a *app.App) error {
	extras, err := a.API.ListExtras(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE")
	for _, e := range extras {
		fmt.Fprintf(w, "%s\t%s\t$%.2f\n", e.ID, e.Name, e.Price)
	}
	return w.Flush()
}

func cmdCart(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: pizzeria cart <add|list|qty|remove|clear>")
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		return cmdCartAdd(ctx, a, rest)
	case "list":
		return cmdCartList(ctx, a)
	case "qty":
		if len(rest) != 2 {
			return errors.New("usage: pizzeria cart qty <line-id> <quantity>")
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %w", err)
		}
		return a.Cart.SetQuantity(ctx, rest[0], qty)
	case "remove":
		if len(rest) != 1 {
			return errors.New("usage: pizzeria cart remove <line-id>")
		}
		return a.Cart.Remove(ctx, rest[0])
	case "clear":
		return a.Cart.Clear(ctx)
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func cmdCartAdd(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
	qty := fs.Int("qty", 1, "quantity")
	extrasFlag := fs.String("extras", "", "comma-separated extra ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pizzeria cart add <pizza-id> [-qty N] [-extras id,id]")
	}

	pizza, err := a.API.GetPizza(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	var extraIDs []string
	var catalog []domain.Extra
	if *extrasFlag != "" {
		extraIDs = strings.Split(*extrasFlag, ",")
		if catalog, err = a.API.ListExtras(ctx); err != nil {
			return err
		}
	}

	line, err := a.Cart.Add(ctx, pizza, *qty, extraIDs, catalog)
	if err != nil {
		return err
	}
	fmt.Printf("added %s x%d (line %s)\n", line.Name, line.Quantity, line.ID)
	return nil
}

func cmdCartList(ctx context.Context, a *app.App) error {
	items, err := a.Cart.Items(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tPIZZA\tQTY\tEXTRAS\tTOTAL")
	for _, item := range items {
		names := make([]string, 0, len(item.Extras))
		for _, e := range item.Extras {
			names = append(names, e.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t$%.2f\n",
			item.ID, item.Name, item.Quantity, strings.Join(names, ","), item.Total())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("subtotal: $%.2f\n", domain.Subtotal(items))
	return nil
}

func deliveryFlags(fs *flag.FlagSet) *checkout.DeliveryForm {
	form := &checkout.DeliveryForm{}
	fs.StringVar(&form.Name, "name", "", "customer name")
	fs.StringVar(&form.Email, "email", "", "customer email")
	fs.StringVar(&form.Phone, "phone", "", "customer phone")
	fs.StringVar(&form.Address, "address", "", "delivery address")
	return form
}

func printFieldErrors(fields map[string]string) error {
	for field, msg := range fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
	}
	return errors.New("the form has errors")
}

func cmdCheckout(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	form := deliveryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.API.EnsureSession(ctx, a.Config.DemoUserID); err != nil {
		return err
	}

	order, fields, err := a.Workflow.PlaceCartOrder(ctx, *form)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return printFieldErrors(fields)
	}
	fmt.Printf("order %s placed, total $%.2f\n", order.ID, order.TotalAmount)
	return nil
}

func cmdQuickOrder(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("quick-order", flag.ContinueOnError)
	delivery := deliveryFlags(fs)
	qty := fs.Int("qty", 1, "quantity")
	extrasFlag := fs.String("extras", "", "comma-separated extra ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pizzeria quick-order <pizza-id> [flags]")
	}

	form := checkout.QuickOrderForm{DeliveryForm: *delivery, Quantity: *qty}

	pizza, err := a.API.GetPizza(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	var extraIDs []string
	var chosen []domain.Extra
	if *extrasFlag != "" {
		var sel checkout.ExtraSelection
		for _, id := range strings.Split(*extrasFlag, ",") {
			sel.Add(strings.TrimSpace(id))
		}
		catalog, err := a.API.ListExtras(ctx)
		if err != nil {
			return err
		}
		extraIDs = sel.IDs()
		chosen = domain.ResolveExtras(catalog, extraIDs)
	}
	fmt.Printf("estimated total: $%.2f\n", checkout.QuickTotal(pizza, chosen, *qty))

	if err := a.API.EnsureSession(ctx, a.Config.DemoUserID); err != nil {
		return err
	}

	order, fields, err := a.Workflow.PlaceQuickOrder(ctx, pizza.ID, extraIDs, form)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return printFieldErrors(fields)
	}
	fmt.Printf("order %s placed, total $%.2f\n", order.ID, order.TotalAmount)
	return nil
}

func cmdLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("usage: pizzeria login -email <email> -password <password>")
	}

	if err := a.API.Login(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

func cmdSession(ctx context.Context, a *app.App) error {
	claims, err := a.Session.Claims(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("subject: %s\n", claims.Subject)
	if !claims.ExpiresAt.IsZero() {
		fmt.Printf("expires: %s\n", claims.ExpiresAt)
	}
	return nil
}

func cmdAdmin(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: pizzeria admin <orders|order|status|serve>")
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "orders":
		return cmdAdminOrders(ctx, a, rest)
	case "order":
		if len(rest) != 1 {
			return errors.New("usage: pizzeria admin order <id>")
		}
		order, err := a.API.GetOrder(ctx, rest[0])
		if err != nil {
			return err
		}
		printOrder(order)
		return nil
	case "status":
		if len(rest) != 2 {
			return errors.New("usage: pizzeria admin status <id> <status>")
		}
		status, err := domain.ParseOrderStatus(rest[1])
		if err != nil {
			return err
		}
		order, err := a.API.UpdateOrderStatus(ctx, rest[0], status)
		if err != nil {
			return err
		}
		fmt.Printf("order %s is now %s\n", order.ID, order.Status)
		return nil
	case "serve":
		return app.NewAdminServer(a).Run(ctx)
	default:
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}

func cmdAdminOrders(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("admin orders", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", a.Config.PageSize, "page size")
	status := fs.String("status", api.StatusAll, "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *status != api.StatusAll {
		if _, err := domain.ParseOrderStatus(*status); err != nil {
			return err
		}
	}

	result, err := a.API.ListOrders(ctx, pagination.Params{Page: *page, Limit: *limit}, *status)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tSTATUS\tTOTAL\tPLACED")
	for _, o := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n",
			o.ID, o.CustomerName, o.Status, o.TotalAmount, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d (%d orders)\n", result.Page, result.Pages, result.Total)
	return nil
}

func printOrder(o domain.Order) {
	fmt.Printf("order %s (%s)\n", o.ID, o.Status)
	fmt.Printf("customer: %s <%s>\n", o.CustomerName, o.CustomerEmail)
	if o.CustomerPhone != "" {
		fmt.Printf("phone: %s\n", o.CustomerPhone)
	}
	fmt.Printf("address: %s\n", o.CustomerAddress)
	for _, item := range o.Items {
		fmt.Printf("  %s x%d $%.2f\n", item.PizzaName, item.Quantity, item.ItemTotal)
	}
	fmt.Printf("total: $%.2f\n", o.TotalAmount)
}
