// eventsctl is the operator CLI: promote admins, purge accounts, and list
// events by creator, straight against the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"campusevents/internal/store"
	"campusevents/pkg/db"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: eventsctl <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  set-admin       -email <email> [-revoke]")
	fmt.Fprintln(os.Stderr, "  purge-users     [-domain <domain>] -yes-i-am-sure")
	fmt.Fprintln(os.Stderr, "  list-created-by -email <email>")
	os.Exit(2)
}

func openStore() *store.Store {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	gdb, err := db.OpenGorm(db.Config{DSN: dsn})
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	return store.New(gdb)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "set-admin":
		fs := flag.NewFlagSet("set-admin", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		revoke := fs.Bool("revoke", false, "revoke admin instead of granting it")
		fs.Parse(os.Args[2:])
		if *email == "" {
			usage()
		}
		st := openStore()
		if _, err := st.Users().GetByEmail(ctx, *email); err != nil {
			fmt.Fprintln(os.Stderr, "lookup:", err)
			os.Exit(1)
		}
		if err := st.Users().SetAdmin(ctx, *email, !*revoke); err != nil {
			fmt.Fprintln(os.Stderr, "set admin:", err)
			os.Exit(1)
		}
		fmt.Printf("admin=%v for %s\n", !*revoke, *email)

	case "purge-users":
		fs := flag.NewFlagSet("purge-users", flag.ExitOnError)
		domainFilter := fs.String("domain", "", "only delete users with this email domain")
		sure := fs.Bool("yes-i-am-sure", false, "confirm destructive action")
		fs.Parse(os.Args[2:])
		if !*sure {
			fmt.Fprintln(os.Stderr, "refusing to proceed without -yes-i-am-sure")
			os.Exit(1)
		}
		st := openStore()
		users, err := st.Users().List(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "list users:", err)
			os.Exit(1)
		}
		deleted := 0
		for _, u := range users {
			if *domainFilter != "" && !strings.HasSuffix(strings.ToLower(u.Email), "@"+strings.ToLower(*domainFilter)) {
				continue
			}
			if err := st.Users().Delete(ctx, u.Email); err != nil {
				fmt.Fprintf(os.Stderr, "delete %s: %v\n", u.Email, err)
				os.Exit(1)
			}
			deleted++
		}
		fmt.Printf("deleted %d users\n", deleted)

	case "list-created-by":
		fs := flag.NewFlagSet("list-created-by", flag.ExitOnError)
		email := fs.String("email", "", "creator email")
		fs.Parse(os.Args[2:])
		if *email == "" {
			usage()
		}
		st := openStore()
		events, err := st.Events().ListByCreator(ctx, *email)
		if err != nil {
			fmt.Fprintln(os.Stderr, "list events:", err)
			os.Exit(1)
		}
		for _, e := range events {
			fmt.Printf("%d\t%s\t%d/%d seats free\n", e.ID, e.Title, e.AvailableSeats, e.Capacity)
		}
		fmt.Printf("%d events\n", len(events))

	default:
		usage()
	}
}
