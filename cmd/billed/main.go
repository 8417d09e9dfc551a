// Command billed is a terminal front-end for the expense-report core. It
// drives the router and containers from a small command loop, rendering pages
// to stdout. The session persists in a sqlite file, so logins survive
// restarts the way they would across browser reloads.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/billed-app/billed/internal/containers"
	"github.com/billed-app/billed/internal/dom"
	"github.com/billed-app/billed/internal/router"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/session"
	"github.com/billed-app/billed/internal/session/sqlitekv"
	"github.com/billed-app/billed/internal/store"
	"github.com/billed-app/billed/internal/store/httpstore"
	"github.com/billed-app/billed/internal/store/memstore"
	"github.com/billed-app/billed/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("SESSION_DB_PATH", "./data/session.db")
	storage, err := sqlitekv.New(dbPath)
	if err != nil {
		slog.Error("failed to open session storage", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer storage.Close()
	sessions := session.NewManager(storage)

	var st store.Store
	if apiURL := os.Getenv("BILLED_API_URL"); apiURL != "" {
		slog.Info("using remote store", "url", apiURL)
		st = httpstore.New(apiURL, sessions)
	} else {
		slog.Info("using in-memory store with fixture data")
		st = memstore.NewDefault()
	}

	doc := dom.NewWriterDocument(os.Stdout)
	modal := dom.NewMemoryModal()
	modal.AddContainer("modaleFile", 500)

	r := router.New(doc, modal, router.NewMemoryLocation(), sessions, st)

	ctx := context.Background()
	r.Resolve(ctx)

	repl(ctx, r, sessions, modal)
}

const usage = `commands:
  login <email> <password>   sign in on the employee form
  admin <email> <password>   sign in on the admin form
  go <login|bills|new|dashboard>
  preview <file-url>         open the receipt overlay (bills page)
  attach <path>              pick a receipt file (new-bill page)
  submit <date> <amount> <name...>
  accept <bill-id>           accept a pending bill (dashboard)
  refuse <bill-id>           refuse a pending bill (dashboard)
  logout
  quit`

func repl(ctx context.Context, r *router.Router, sessions *session.Manager, modal *dom.MemoryModal) {
	fmt.Println(usage)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return
		case "help":
			fmt.Println(usage)
		case "login", "admin":
			if len(args) != 3 {
				fmt.Printf("usage: %s <email> <password>\n", args[0])
				continue
			}
			login, ok := r.Current().(*containers.Login)
			if !ok {
				fmt.Println("not on the login page, try: go login")
				continue
			}
			var err error
			if args[0] == "admin" {
				err = login.HandleAdminSubmit(ctx, args[1], args[2])
			} else {
				err = login.HandleEmployeeSubmit(ctx, args[1], args[2])
			}
			if err != nil {
				fmt.Println("login failed:", err)
			}
		case "go":
			if len(args) != 2 {
				fmt.Println("usage: go <login|bills|new|dashboard>")
				continue
			}
			id, ok := map[string]routes.ID{
				"login":     routes.Login,
				"bills":     routes.Bills,
				"new":       routes.NewBill,
				"dashboard": routes.Dashboard,
			}[args[1]]
			if !ok {
				fmt.Println("unknown page:", args[1])
				continue
			}
			r.NavigateTo(ctx, id)
		case "preview":
			bills, ok := r.Current().(*containers.Bills)
			if !ok || len(args) != 2 {
				fmt.Println("usage (on the bills page): preview <file-url>")
				continue
			}
			bills.HandleClickIconEye(args[1])
			fmt.Println(modal.ContentOf("modaleFile"))
		case "attach":
			newBill, ok := r.Current().(*containers.NewBill)
			if !ok || len(args) != 2 {
				fmt.Println("usage (on the new-bill page): attach <path>")
				continue
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				fmt.Println("cannot read file:", err)
				continue
			}
			if err := newBill.HandleFileChange(ctx, filepath.Base(args[1]), content); err != nil {
				fmt.Println("upload failed:", err)
			}
		case "submit":
			newBill, ok := r.Current().(*containers.NewBill)
			if !ok || len(args) < 4 {
				fmt.Println("usage (on the new-bill page): submit <date> <amount> <name...>")
				continue
			}
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				fmt.Println("bad amount:", args[2])
				continue
			}
			err = newBill.HandleSubmit(ctx, containers.FormValues{
				Type:   "Transports",
				Name:   strings.Join(args[3:], " "),
				Date:   args[1],
				Amount: amount,
			})
			if err != nil {
				fmt.Println("submit failed:", err)
			}
		case "accept", "refuse":
			dashboard, ok := r.Current().(*containers.Dashboard)
			if !ok || len(args) != 2 {
				fmt.Printf("usage (on the dashboard): %s <bill-id>\n", args[0])
				continue
			}
			bill, found := dashboard.Bill(ctx, args[1])
			if !found {
				fmt.Println("no such bill:", args[1])
				continue
			}
			var err error
			if args[0] == "accept" {
				err = dashboard.HandleAccept(ctx, bill)
			} else {
				err = dashboard.HandleRefuse(ctx, bill)
			}
			if err != nil {
				fmt.Printf("%s failed: %v\n", args[0], err)
			}
		case "logout":
			containers.NewLogout(sessions, func(id routes.ID) { r.NavigateTo(ctx, id) }).HandleClick()
		default:
			fmt.Println("unknown command:", args[0])
		}
	}
}
