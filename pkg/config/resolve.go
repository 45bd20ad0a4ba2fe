package config

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Resolved is the API endpoint a command talks to. An empty APIURL means the
// command uses the database directly.
type Resolved struct {
	APIURL  string
	Token   string
	Profile string
}

// Resolve picks the API URL and token from flags, then FIELDCTL_API_URL and
// FIELDCTL_TOKEN, then the selected profile.
func Resolve(cmd *cobra.Command) (Resolved, error) {
	flagURL, _ := cmd.Flags().GetString("api-url")
	flagToken, _ := cmd.Flags().GetString("token")
	flagProfile, _ := cmd.Flags().GetString("profile")

	f, err := Load()
	if err != nil {
		return Resolved{}, err
	}
	prof := f.Active
	if flagProfile != "" {
		prof = flagProfile
	}
	p := f.Profiles[prof]

	return Resolved{
		APIURL:  firstNonEmpty(flagURL, os.Getenv("FIELDCTL_API_URL"), p.APIURL),
		Token:   firstNonEmpty(flagToken, os.Getenv("FIELDCTL_TOKEN"), p.Token),
		Profile: prof,
	}, nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
