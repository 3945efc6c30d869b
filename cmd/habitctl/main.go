// Command habitctl is a terminal client for the Kanso Habits API.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/client"
)

type cli struct {
	out       io.Writer
	apiURL    string
	tokenPath string
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kanso", "token")
	}
	return filepath.Join(home, ".kanso", "token")
}

func defaultAPIURL() string {
	if v := os.Getenv("KANSO_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func newRootCmd(out io.Writer, tokenPath string) *cobra.Command {
	c := &cli{out: out, tokenPath: tokenPath}

	root := &cobra.Command{
		Use:           "habitctl",
		Short:         "CLI client for the Kanso Habits API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&c.apiURL, "api", "a", defaultAPIURL(), "Kanso API base URL")

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.habitsCmd(),
		c.checkInCmd(),
		c.checkInsCmd(),
		c.statsCmd(),
	)
	return root
}

// session restores the saved login into a client.Session.
func (c *cli) session() (*client.Session, error) {
	saved, err := loadToken(c.tokenPath)
	if err != nil {
		return nil, err
	}
	s := client.NewSession()
	s.SetUser(saved.UserID, saved.Email, saved.Token)
	return s, nil
}

func (c *cli) api() *client.Client {
	return client.New(c.apiURL)
}

func main() {
	if err := newRootCmd(os.Stdout, defaultTokenPath()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
