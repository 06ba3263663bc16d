// Package analyzer infers a structural type for every value in a parsed JSON
// sample. Objects come out unnamed; internal/graph names and deduplicates
// them.
package analyzer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/formats"
	"github.com/mcncl/jsonsynth/internal/models"
)

// Analyzer walks parsed JSON and produces TypeNode trees.
type Analyzer struct {
	// detectFormats enables string format tagging
	detectFormats bool
}

// NewAnalyzer creates an Analyzer with format detection enabled.
func NewAnalyzer() *Analyzer {
	return &Analyzer{detectFormats: true}
}

// NewAnalyzerWithOptions creates an Analyzer configured from opts.
func NewAnalyzerWithOptions(opts config.Options) *Analyzer {
	return &Analyzer{detectFormats: opts.DetectFormats}
}

// Analyze infers the type of the whole document. rootName is the key hint
// given to the top-level value.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation, rootName string) (models.TypeNode, error) {
	if rootName == "" {
		rootName = config.DefaultRootName
	}
	node, err := a.analyzeNode(ir.Root, rootName, false)
	if err != nil {
		return models.TypeNode{}, fmt.Errorf("failed to analyze root node: %w", err)
	}
	return node, nil
}

func (a *Analyzer) analyzeNode(node models.JSONValue, keyHint string, inArray bool) (models.TypeNode, error) {
	switch v := node.(type) {
	case nil:
		return models.NullType(), nil
	case bool:
		return models.BoolType(), nil
	case string:
		return a.analyzeString(v), nil
	case models.Number:
		return analyzeNumber(v), nil
	case *models.JSONObject:
		return a.analyzeObject(v, keyHint, inArray)
	case models.JSONArray:
		return a.analyzeArray(v, keyHint)
	default:
		return models.TypeNode{}, fmt.Errorf("unexpected json value type: %T", v)
	}
}

func (a *Analyzer) analyzeString(s string) models.TypeNode {
	if !a.detectFormats {
		return models.StringType(models.FormatNone)
	}
	return models.StringType(formats.Detect(s))
}

// analyzeNumber picks Int32, Int64 or Float. A literal such as 1.0 or 1e3
// holds an integral value and is typed as an integer.
func analyzeNumber(num models.Number) models.TypeNode {
	s := string(num)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return intOfWidth(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.FloatType()
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return intOfWidth(int64(f))
	}
	return models.FloatType()
}

func intOfWidth(i int64) models.TypeNode {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return models.IntType(models.Int32)
	}
	return models.IntType(models.Int64)
}

func (a *Analyzer) analyzeObject(obj *models.JSONObject, keyHint string, inArray bool) (models.TypeNode, error) {
	shape := &models.ObjectNode{
		Hint:    keyHint,
		InArray: inArray,
		Fields:  make([]models.ObjectField, 0, obj.Len()),
	}
	for _, key := range obj.Keys {
		fieldNode, err := a.analyzeNode(obj.Values[key], key, false)
		if err != nil {
			return models.TypeNode{}, fmt.Errorf("failed to analyze field '%s' in object '%s': %w", key, keyHint, err)
		}
		shape.Fields = append(shape.Fields, models.ObjectField{Key: key, Node: fieldNode})
	}
	return models.TypeNode{Kind: models.Object, Object: shape}, nil
}

// analyzeArray types an array by its first element only. Later elements are
// not checked against it.
func (a *Analyzer) analyzeArray(arr models.JSONArray, keyHint string) (models.TypeNode, error) {
	if len(arr) == 0 {
		return models.ArrayOf(models.UnknownType()), nil
	}
	elem, err := a.analyzeNode(arr[0], keyHint, true)
	if err != nil {
		return models.TypeNode{}, fmt.Errorf("failed to analyze element 0 of array '%s': %w", keyHint, err)
	}
	return models.ArrayOf(elem), nil
}
