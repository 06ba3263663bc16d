package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcncl/jsonsynth/internal/errors"
	"github.com/mcncl/jsonsynth/internal/naming"
)

// Target names an output notation.
type Target string

const (
	TargetJSONSchema Target = "jsonschema"
	TargetGo         Target = "go"
	TargetCSharp     Target = "csharp"
	TargetKotlin     Target = "kotlin"
	TargetPydantic   Target = "pydantic"
)

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetJSONSchema, TargetGo, TargetCSharp, TargetKotlin, TargetPydantic}
}

// NullablePolicy decides how a JSON null field is typed.
type NullablePolicy string

const (
	NullableWrap NullablePolicy = "wrap" // optional/nullable wrapper around the top type
	NullableNone NullablePolicy = "none" // the plain top type
)

// AliasStyle decides when a field carries an annotation naming its JSON key.
type AliasStyle string

const (
	AliasAuto   AliasStyle = "auto" // only when the identifier differs from the key
	AliasAlways AliasStyle = "always"
	AliasNever  AliasStyle = "never"
)

// MergeMode decides when two objects share one declaration.
type MergeMode string

const (
	// MergeByName treats objects with the same derived name as one type; the
	// first shape registered under a name wins.
	MergeByName MergeMode = "name"
	// MergeStructural treats objects with identical fields as one type and
	// suffixes names when different shapes would share one.
	MergeStructural MergeMode = "structural"
)

const (
	DefaultRootName = "Root"
	DefaultMaxDepth = 1000
	// MaxDepthLimit bounds MaxDepth; the strict syntax pass in the parser
	// refuses deeper documents on its own.
	MaxDepthLimit = 10000
)

// Options configures one generation run. Build it from DefaultOptions, then
// pass it through Resolve before use.
type Options struct {
	Target        Target
	RootName      string
	Casing        naming.Casing
	Nullable      NullablePolicy
	DetectFormats bool
	Aliases       AliasStyle
	Namespace     string // package, namespace or $id depending on target
	Merge         MergeMode
	Singularize   bool
	MaxDepth      int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Target:        TargetGo,
		RootName:      DefaultRootName,
		Casing:        naming.Auto,
		Nullable:      NullableWrap,
		DetectFormats: true,
		Aliases:       AliasAuto,
		Merge:         MergeByName,
		Singularize:   true,
		MaxDepth:      DefaultMaxDepth,
	}
}

var defaultCasing = map[Target]naming.Casing{
	TargetJSONSchema: naming.Preserve,
	TargetGo:         naming.Pascal,
	TargetCSharp:     naming.Pascal,
	TargetKotlin:     naming.Camel,
	TargetPydantic:   naming.Snake,
}

var (
	goPackageRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	dottedRegex    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

// Resolve validates o and returns a copy with defaults filled in and Casing
// made concrete for the target. Every rejected combination is reported here
// so emitters never re-check options.
func (o Options) Resolve() (Options, error) {
	r := o
	if r.Target == "" {
		r.Target = TargetGo
	}
	if _, ok := defaultCasing[r.Target]; !ok {
		return Options{}, errors.NewOptionsError(fmt.Sprintf("unknown target %q (available: %s)", r.Target, targetList()), errors.ErrUnknownTarget)
	}

	if strings.TrimSpace(r.RootName) == "" {
		r.RootName = DefaultRootName
	}
	if naming.IsBlank(r.RootName) {
		return Options{}, invalid("root name %q has no identifier characters", r.RootName)
	}

	if r.Casing == "" {
		r.Casing = naming.Auto
	}
	if !r.Casing.Valid() {
		return Options{}, invalid("unknown casing %q", r.Casing)
	}
	if r.Casing == naming.Auto {
		r.Casing = defaultCasing[r.Target]
	}

	if r.Nullable == "" {
		r.Nullable = NullableWrap
	}
	if r.Nullable != NullableWrap && r.Nullable != NullableNone {
		return Options{}, invalid("unknown nullable policy %q", r.Nullable)
	}

	if r.Aliases == "" {
		r.Aliases = AliasAuto
	}
	if r.Aliases != AliasAuto && r.Aliases != AliasAlways && r.Aliases != AliasNever {
		return Options{}, invalid("unknown alias style %q", r.Aliases)
	}

	if r.Merge == "" {
		r.Merge = MergeByName
	}
	if r.Merge != MergeByName && r.Merge != MergeStructural {
		return Options{}, invalid("unknown merge mode %q", r.Merge)
	}

	if r.MaxDepth == 0 {
		r.MaxDepth = DefaultMaxDepth
	}
	if r.MaxDepth < 1 || r.MaxDepth > MaxDepthLimit {
		return Options{}, invalid("max depth %d outside 1..%d", r.MaxDepth, MaxDepthLimit)
	}

	if err := r.checkTarget(); err != nil {
		return Options{}, err
	}
	return r, nil
}

func (o Options) checkTarget() error {
	switch o.Target {
	case TargetGo:
		if o.Casing != naming.Pascal {
			return invalid("go output requires pascal field casing, got %q", o.Casing)
		}
		if o.Aliases == AliasNever {
			return invalid("go output needs json tags; alias style %q is not supported", o.Aliases)
		}
		if o.Namespace != "" && !goPackageRegex.MatchString(o.Namespace) {
			return invalid("%q is not a valid go package name", o.Namespace)
		}
	case TargetCSharp, TargetKotlin:
		if o.Namespace != "" && !dottedRegex.MatchString(o.Namespace) {
			return invalid("%q is not a valid %s namespace", o.Namespace, o.Target)
		}
	case TargetPydantic:
		if o.Namespace != "" {
			return invalid("pydantic output has no namespace; got %q", o.Namespace)
		}
	}
	return nil
}

// WantAlias reports whether a field named name, read from key, carries an
// alias annotation.
func (o Options) WantAlias(name, key string) bool {
	switch o.Aliases {
	case AliasAlways:
		return true
	case AliasNever:
		return false
	default:
		return name != key
	}
}

func invalid(format string, args ...interface{}) error {
	return errors.NewOptionsError(fmt.Sprintf(format, args...), errors.ErrInvalidOptions)
}

func targetList() string {
	names := make([]string, 0, len(defaultCasing))
	for _, t := range Targets() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
