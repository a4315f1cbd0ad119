package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

// trackedModules are the dependencies reported by the version command.
var trackedModules = []string{
	"github.com/rs/zerolog",
	"github.com/spf13/cobra",
	"github.com/spf13/viper",
	"go.opentelemetry.io/otel",
}

// Dependency is a module version linked into the binary.
type Dependency struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// Info represents version information.
type Info struct {
	Version      string       `json:"version" yaml:"version"`
	GitCommit    string       `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	GitBranch    string       `json:"git_branch,omitempty" yaml:"git_branch,omitempty"`
	BuildTime    string       `json:"build_time" yaml:"build_time"`
	GoVersion    string       `json:"go_version" yaml:"go_version"`
	Platform     string       `json:"platform" yaml:"platform"`
	BuildDate    time.Time    `json:"-" yaml:"-"`
	IsRelease    bool         `json:"is_release" yaml:"is_release"`
	IsDirty      bool         `json:"is_dirty" yaml:"is_dirty"`
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Get returns version information from ldflags, falling back to the VCS
// stamps Go embeds in the binary.
func Get() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		if GoVersion == "" {
			info.GoVersion = buildInfo.GoVersion
		}
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if GitCommit == "" {
					info.GitCommit = setting.Value
					if len(info.GitCommit) > 7 {
						info.GitCommit = info.GitCommit[:7]
					}
				}
			case "vcs.modified":
				info.IsDirty = setting.Value == "true"
			case "vcs.time":
				if BuildTime == "" {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuildDate = t
						info.BuildTime = setting.Value
					}
				}
			}
		}
		info.Dependencies = tracked(buildInfo.Deps)
	}

	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	if info.BuildDate.IsZero() {
		info.BuildTime = "unknown"
	}

	return info
}

func tracked(deps []*debug.Module) []Dependency {
	var out []Dependency
	for _, path := range trackedModules {
		for _, m := range deps {
			if m.Path != path {
				continue
			}
			if m.Replace != nil {
				m = m.Replace
			}
			out = append(out, Dependency{Path: path, Version: m.Version})
			break
		}
	}
	return out
}

// Short returns the version with the commit appended, e.g. "1.2.0-abc1234".
func Short() string {
	info := Get()
	if info.GitCommit != "" {
		if info.IsDirty {
			return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
		}
		return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
	}
	return info.Version
}

// Full returns a detailed single-line version string.
func Full() string {
	info := Get()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
	}
	if info.GitBranch != "" && info.GitBranch != "main" && info.GitBranch != "master" {
		parts = append(parts, info.GitBranch)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	version := strings.Join(parts, "-")
	if !info.BuildDate.IsZero() {
		version += fmt.Sprintf(" (built %s)", info.BuildDate.UTC().Format("2006-01-02T15:04:05Z"))
	}
	return fmt.Sprintf("%s %s %s", version, info.GoVersion, info.Platform)
}
