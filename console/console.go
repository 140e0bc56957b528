// Package console provides the interactive menu driving the market.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/stevemurr/market/market"
	"github.com/stevemurr/market/model"
)

// errExit stops the menu loop without reporting a failure.
var errExit = errors.New("exit")

type command struct {
	label string
	run   func() error
}

// Console reads menu choices from an input stream and reports to an output
// stream. It is not safe for concurrent use.
type Console struct {
	market   *market.Market
	in       *bufio.Scanner
	out      io.Writer
	log      *slog.Logger
	keys     []string
	commands map[string]command
}

// New creates a Console and registers all menu commands.
func New(m *market.Market, in io.Reader, out io.Writer, log *slog.Logger) *Console {
	c := &Console{
		market:   m,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
		commands: make(map[string]command),
	}
	c.routes()
	return c
}

func (c *Console) routes() {
	c.handle("1", "Show the Clients", c.showClients)
	c.handle("2", "Show the Products", c.showProducts)
	c.handle("3", "Buying", c.buy)
	c.handle("4", "Exit", c.exit)
	c.handle("5", "Add New Client", c.addClient)
	c.handle("6", "Add New Product", c.addProduct)
	c.handle("7", "Delete Client", c.deleteClient)
	c.handle("8", "Delete Product", c.deleteProduct)
}

func (c *Console) handle(key, label string, run func() error) {
	c.keys = append(c.keys, key)
	c.commands[key] = command{label: label, run: run}
}

// Run shows the menu and executes commands until the user exits or input
// ends. It returns the first error that is not a reportable market outcome;
// such an error means the on-disk state may be stale and the caller must stop.
func (c *Console) Run() error {
	for {
		c.menu()
		choice, ok := c.readLine()
		if !ok {
			c.println("Exiting...")
			return nil
		}
		cmd, found := c.commands[choice]
		if !found {
			c.println("Invalid command!")
			continue
		}
		err := cmd.run()
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			c.log.Error("command_failed", "command", cmd.label, "error", err)
			return err
		}
	}
}

func (c *Console) menu() {
	c.println("\n--- Market ---")
	for _, key := range c.keys {
		c.printf("%s. %s\n", key, c.commands[key].label)
	}
	c.println("Enter your choice:")
}

// ---------- commands ----------

func (c *Console) showClients() error {
	for _, e := range c.market.Clients() {
		c.printf("ID: %d => %s %s, Balance: %.2f\n", e.ID, e.Client.Name, e.Client.Surname, e.Client.Balance)
	}
	return nil
}

func (c *Console) showProducts() error {
	for _, e := range c.market.Products() {
		c.printf("ID: %d => %s | Price: %.2f | Stock: %d\n", e.ID, e.Product.Name, e.Product.Price, e.Product.Stock)
	}
	return nil
}

func (c *Console) buy() error {
	clientID := c.promptUint32("Enter Client ID:")
	productID := c.promptUint32("Enter Product ID:")

	p, err := c.market.Buy(clientID, productID)
	switch {
	case errors.Is(err, market.ErrNotFound):
		c.println("Client or product not found.")
	case errors.Is(err, market.ErrOutOfStock):
		c.println("Product is out of stock!")
	case errors.Is(err, market.ErrInsufficientFunds):
		c.println("Insufficient funds!")
	case err != nil:
		return err
	default:
		c.printf("Customer %s bought the '%s' product!\n", p.ClientName, p.ProductName)
	}
	return nil
}

func (c *Console) exit() error {
	c.println("Exiting...")
	return errExit
}

func (c *Console) addClient() error {
	id := c.promptUint32("New client ID:")
	client := model.Client{
		Name:    c.promptString("Name:"),
		Surname: c.promptString("Surname:"),
		Balance: c.promptFloat("Balance:"),
	}
	if err := c.market.AddClient(id, client); err != nil {
		return err
	}
	c.println("Client saved.")
	return nil
}

func (c *Console) addProduct() error {
	id := c.promptUint32("New product ID:")
	product := model.Product{
		Name:  c.promptString("Product Name:"),
		Price: c.promptFloat("Price:"),
		Stock: c.promptUint32("Stock:"),
	}
	if err := c.market.AddProduct(id, product); err != nil {
		return err
	}
	c.println("Product saved.")
	return nil
}

func (c *Console) deleteClient() error {
	found, err := c.market.DeleteClient(c.promptUint32("Client to be deleted ID:"))
	if err != nil {
		return err
	}
	if found {
		c.println("Client deleted.")
	} else {
		c.println("Client not found.")
	}
	return nil
}

func (c *Console) deleteProduct() error {
	found, err := c.market.DeleteProduct(c.promptUint32("Product to be deleted ID:"))
	if err != nil {
		return err
	}
	if found {
		c.println("Product deleted.")
	} else {
		c.println("Product not found.")
	}
	return nil
}

// ---------- prompts ----------

// readLine returns the next trimmed input line, or false once input is exhausted.
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			c.log.Warn("input_read_failed", "error", err)
		}
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) promptString(prompt string) string {
	c.println(prompt)
	s, _ := c.readLine()
	return s
}

// promptUint32 reads an unsigned id or count. A single leading '+' is
// accepted. Unparsable input yields 0.
func (c *Console) promptUint32(prompt string) uint32 {
	s := c.promptString(prompt)
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 32)
	if err != nil {
		c.log.Debug("input_defaulted", "prompt", prompt, "input", s)
		return 0
	}
	return uint32(n)
}

// promptFloat reads an amount. Unparsable or non-finite input yields 0.
func (c *Console) promptFloat(prompt string) float64 {
	s := c.promptString(prompt)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		c.log.Debug("input_defaulted", "prompt", prompt, "input", s)
		return 0
	}
	return f
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
