package docsconfig

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// MemberFiles expands a members setting into the files it names.
// The setting is either a single path or a doublestar pattern such as
// "members/**/*.yaml"; pattern matches are sorted. A blank setting names nothing.
func MemberFiles(setting string) ([]string, error) {
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return nil, nil
	}
	if !strings.ContainsAny(setting, "*?[{") {
		return []string{setting}, nil
	}

	files, err := doublestar.FilepathGlob(setting)
	if err != nil {
		return nil, fmt.Errorf("invalid members pattern %q: %w", setting, err)
	}
	sort.Strings(files)
	return files, nil
}

// LoadMembers reads the member lists a hosting page supplies for toolbar
// filtering, in MemberFiles order. An empty setting means the page has no members.
func LoadMembers(setting string) ([]domain.Member, error) {
	files, err := MemberFiles(setting)
	if err != nil || len(files) == 0 {
		return nil, err
	}

	var members []domain.Member
	for _, path := range files {
		part, err := loadMemberFile(path)
		if err != nil {
			return nil, err
		}
		members = append(members, part...)
	}
	return members, nil
}

func loadMemberFile(path string) ([]domain.Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read members file: %w", err)
	}

	var members []domain.Member
	if err := yaml.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("failed to parse members file %s: %w", path, err)
	}

	for i, m := range members {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("%s: member %d has no name", path, i)
		}
		if strings.TrimSpace(m.Kind) == "" {
			return nil, fmt.Errorf("%s: member %q has no kind", path, m.Name)
		}
	}
	return members, nil
}

// SourceFingerprint hashes the configuration file together with every member file.
func SourceFingerprint(configFile, membersSetting string) (string, error) {
	files, err := MemberFiles(membersSetting)
	if err != nil {
		return "", err
	}
	return FingerprintFiles(append([]string{configFile}, files...)...)
}
