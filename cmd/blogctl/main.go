package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:5678"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}
	client := NewAPIClient(apiURL)

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "register":
		err = registerCmd(client, args)
	case "login":
		err = loginCmd(client, args)
	case "logout":
		err = ClearSession()
		if err == nil {
			fmt.Println("Logged out")
		}
	case "whoami":
		err = whoamiCmd(client)
	case "list":
		err = listCmd(client)
	case "get":
		err = getCmd(client, args)
	case "mine":
		err = mineCmd(client)
	case "create":
		err = createCmd(client, args)
	case "update":
		err = updateCmd(client, args)
	case "delete":
		err = deleteCmd(client, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func registerCmd(client *APIClient, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	firstName := fs.String("first", "", "first name")
	lastName := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	token, err := client.Register(*firstName, *lastName, *email, *username, *password)
	if err != nil {
		return err
	}

	session, err := SaveSession(token)
	if err != nil {
		return err
	}

	fmt.Printf("Registered and logged in as %s\n", session.User.Username)
	return nil
}

func loginCmd(client *APIClient, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	identifier := fs.String("identifier", "", "email or username")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	token, err := client.Login(*identifier, *password)
	if err != nil {
		return err
	}

	session, err := SaveSession(token)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", session.User.Username)
	return nil
}

func whoamiCmd(client *APIClient) error {
	session, err := LoadSession()
	if err != nil {
		return err
	}

	// Local claims first, then a server round-trip to confirm the token is
	// still accepted.
	fmt.Printf("%s %s (@%s, %s)\n", session.User.FirstName, session.User.LastName,
		session.User.Username, session.User.Email)

	if _, err := client.Protected(session.Token); err != nil {
		return fmt.Errorf("stored token rejected by server: %w", err)
	}
	fmt.Println("Token accepted by server")
	return nil
}

func listCmd(client *APIClient) error {
	blogs, err := client.ListBlogs()
	if err != nil {
		return err
	}
	printBlogs(blogs)
	return nil
}

func getCmd(client *APIClient, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: blogctl get <id>")
	}

	blog, err := client.GetBlog(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n\n%s\n", blog.Title, blog.Synopsis, blog.Content)
	if blog.Author != nil {
		fmt.Printf("\n— %s %s (@%s)\n", blog.Author.FirstName, blog.Author.LastName, blog.Author.Username)
	}
	return nil
}

func mineCmd(client *APIClient) error {
	session, err := LoadSession()
	if err != nil {
		return err
	}

	blogs, err := client.MyBlogs(session.Token)
	if err != nil {
		return err
	}
	printBlogs(blogs)
	return nil
}

func createCmd(client *APIClient, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "blog title")
	synopsis := fs.String("synopsis", "", "short synopsis")
	content := fs.String("content", "", "blog body")
	featuredImg := fs.String("img", "", "featured image URL")
	fs.Parse(args)

	session, err := LoadSession()
	if err != nil {
		return err
	}

	blog, err := client.CreateBlog(session.Token, *title, *synopsis, *content, *featuredImg)
	if err != nil {
		return err
	}

	fmt.Printf("Created blog %s\n", blog.ID)
	return nil
}

func updateCmd(client *APIClient, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	synopsis := fs.String("synopsis", "", "new synopsis")
	content := fs.String("content", "", "new body")
	featuredImg := fs.String("img", "", "new featured image URL")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: blogctl update [flags] <id>")
	}
	id := fs.Arg(0)

	session, err := LoadSession()
	if err != nil {
		return err
	}

	// Only send the fields that were provided so the server keeps the rest.
	fields := map[string]string{}
	if *title != "" {
		fields["title"] = *title
	}
	if *synopsis != "" {
		fields["synopsis"] = *synopsis
	}
	if *content != "" {
		fields["content"] = *content
	}
	if *featuredImg != "" {
		fields["featuredImg"] = *featuredImg
	}

	blog, err := client.UpdateBlog(session.Token, id, fields)
	if err != nil {
		return err
	}

	fmt.Printf("Updated blog %s\n", blog.ID)
	return nil
}

func deleteCmd(client *APIClient, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: blogctl delete <id>")
	}

	session, err := LoadSession()
	if err != nil {
		return err
	}

	if err := client.DeleteBlog(session.Token, args[0]); err != nil {
		return err
	}

	fmt.Println("Blog deleted")
	return nil
}

func printBlogs(blogs []Blog) {
	if len(blogs) == 0 {
		fmt.Println("No blogs found")
		return
	}
	for _, blog := range blogs {
		author := ""
		if blog.Author != nil {
			author = " — @" + blog.Author.Username
		}
		fmt.Printf("%s  %s%s\n    %s\n", blog.ID, blog.Title, author, blog.Synopsis)
	}
}

func printUsage() {
	fmt.Println(`Blogit CLI - command-line client for the Blogit API

USAGE:
  blogctl <command> [options]

COMMANDS:
  register  Create an account (--first --last --email --username --password)
  login     Log in with --identifier (email or username) and --password
  logout    Clear the stored session
  whoami    Show the stored identity and verify the token server-side
  list      List all active blogs
  get       Show one blog by id
  mine      List your own blogs (requires login)
  create    Create a blog (--title --synopsis --content --img)
  update    Update a blog you own (flags as in create, then <id>)
  delete    Delete a blog you own
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:5678)`)
}
