package bundle

import (
	"os"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/mpyw/neubundle/internal/maputil"
	"github.com/mpyw/neubundle/internal/project"
)

// Placeholder tokens recognized in Info.plist, without braces.
const (
	TokenAppName    = "APP_NAME"
	TokenAppBundle  = "APP_BUNDLE"
	TokenAppID      = "APP_ID"
	TokenAppVersion = "APP_VERSION"
	TokenAppMinOS   = "APP_MIN_OS"
)

var unresolvedPattern = regexp.MustCompile(`\{APP_[A-Z0-9_]+\}`)

// Placeholders maps a token (without braces) to its replacement value.
type Placeholders map[string]string

// PlaceholdersFor builds the Info.plist substitutions from a validated config.
func PlaceholdersFor(cfg *project.Config) Placeholders {
	mac := cfg.Mac()

	return Placeholders{
		TokenAppName:    mac.AppName,
		TokenAppBundle:  mac.AppBundleName,
		TokenAppID:      mac.AppIdentifier,
		TokenAppVersion: cfg.Version,
		TokenAppMinOS:   mac.MinimumOS,
	}
}

// Apply replaces every {TOKEN} occurrence with its value in a single pass.
// Values are inserted verbatim and never rescanned for tokens.
func (p Placeholders) Apply(text string) string {
	pairs := make([]string, 0, len(p)*2)
	for _, key := range maputil.SortedKeys(p) {
		pairs = append(pairs, "{"+key+"}", p[key])
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// ApplyFile rewrites the file at path with placeholders applied, keeping its mode.
func (p Placeholders) ApplyFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	result := p.Apply(string(data))
	if err := os.WriteFile(path, []byte(result), info.Mode().Perm()); err != nil {
		return "", err
	}

	return result, nil
}

// Unresolved returns the distinct {APP_*} tokens still present in text, in order of appearance.
func Unresolved(text string) []string {
	return lo.Uniq(unresolvedPattern.FindAllString(text, -1))
}
