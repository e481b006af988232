package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	counterRe  = regexp.MustCompile(`\{counter(?::(#+))?\}`)
	escapeMeta = regexp.MustCompile(`([{\[}\].])`)
)

// resolveCounters substitutes every counter placeholder left in an
// evaluated candidate name. The candidate, with counters turned into
// capturing digit groups, becomes a regular expression matched against
// the target directory's entries; the next counter value is one past the
// highest value already claimed there.
func resolveCounters(d Descriptor, name, targetPath string) (string, error) {
	matches := counterRe.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return name, nil
	}

	// distinct placeholder forms, in order of first appearance
	seen := map[string]bool{}
	type form struct{ whole, hashes string }
	var forms []form
	for _, m := range matches {
		if !seen[m[0]] {
			seen[m[0]] = true
			forms = append(forms, form{whole: m[0], hashes: m[1]})
		}
	}

	pattern := escapeMeta.ReplaceAllString(name, `\$1`)
	probe := name
	for _, f := range forms {
		needle := escapeMeta.ReplaceAllString(f.whole, `\$1`)
		if f.hashes == "" {
			pattern = strings.ReplaceAll(pattern, needle, `(\d+)`)
			probe = strings.ReplaceAll(probe, f.whole, "1")
		} else {
			group := fmt.Sprintf(`(\d{%d,})`, len(f.hashes))
			pattern = strings.ReplaceAll(pattern, needle, group)
			probe = strings.ReplaceAll(probe, f.whole, pad(1, len(f.hashes)))
		}
	}

	// when the counter-is-1 candidate does not exist yet, the directory
	// scan is pointless
	if _, err := os.Stat(filepath.Join(targetPath, probe)); errors.Is(err, fs.ErrNotExist) {
		return probe, nil
	}

	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return name, nil
	}

	next, err := nextCounterValue(d, re, targetPath)
	if err != nil {
		return "", err
	}

	for _, f := range forms {
		value := strconv.Itoa(next)
		if f.hashes != "" {
			value = pad(next, len(f.hashes))
		}
		name = strings.ReplaceAll(name, f.whole, value)
	}
	return name, nil
}

// nextCounterValue scans the target directory's immediate entries of the
// descriptor's kind, matches each name against the derived regex and
// returns one past the highest counter value captured (1 for a clean
// directory)
func nextCounterValue(d Descriptor, re *regexp.Regexp, targetPath string) (int, error) {
	entries, err := os.ReadDir(targetPath)
	if err != nil {
		return 0, fmt.Errorf("rename: scanning %s: %w", targetPath, err)
	}

	highest := 0
	for _, entry := range entries {
		if entry.IsDir() != d.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v > highest {
			highest = v
		}
	}
	return highest + 1, nil
}
