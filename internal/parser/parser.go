package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/mcncl/jsonsynth/internal/errors"
	"github.com/mcncl/jsonsynth/internal/models"
)

// DefaultMaxDepth is the container nesting accepted when no limit is given.
const DefaultMaxDepth = 1000

// frame is one open container on the work stack.
type frame struct {
	object  *models.JSONObject
	array   models.JSONArray
	key     string
	haveKey bool
}

func (f *frame) value() models.JSONValue {
	if f.object != nil {
		return f.object
	}
	if f.array == nil {
		return models.JSONArray{}
	}
	return f.array
}

// ParseLimited reads one JSON document from reader, rejecting documents that
// nest containers deeper than maxDepth.
func ParseLimited(reader io.Reader, maxDepth int) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, maxDepth)
}

// ParseBytes converts raw JSON text into an IntermediateRepresentation with
// object key order preserved. The walk runs on an explicit stack, so input
// depth never grows the call stack.
func ParseBytes(data []byte, maxDepth int) (models.IntermediateRepresentation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		stack   []*frame
		root    models.JSONValue
		done    bool
		maxSeen int
		emit    = func(v models.JSONValue) {
			if len(stack) == 0 {
				root = v
				done = true
				return
			}
			top := stack[len(stack)-1]
			if top.object != nil {
				top.object.Set(top.key, v)
				top.key, top.haveKey = "", false
				return
			}
			top.array = append(top.array, v)
		}
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if len(stack) > 0 || !done {
				return models.IntermediateRepresentation{}, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
			}
			break
		}
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
		}
		if done {
			return models.IntermediateRepresentation{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}

		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{', '[':
				if len(stack) >= maxDepth {
					return models.IntermediateRepresentation{}, errors.NewDepthError(maxDepth)
				}
				f := &frame{}
				if v == '{' {
					f.object = models.NewJSONObject()
				}
				stack = append(stack, f)
				if len(stack) > maxSeen {
					maxSeen = len(stack)
				}
			case '}', ']':
				if len(stack) == 0 {
					return models.IntermediateRepresentation{}, errors.NewParsingError(fmt.Sprintf("unexpected %q", rune(v)), errors.ErrInvalidJSON)
				}
				top := stack[len(stack)-1]
				if (v == '}') != (top.object != nil) || top.haveKey {
					return models.IntermediateRepresentation{}, errors.NewParsingError(fmt.Sprintf("unexpected %q", rune(v)), errors.ErrInvalidJSON)
				}
				stack = stack[:len(stack)-1]
				emit(top.value())
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object != nil && !stack[n-1].haveKey {
				stack[n-1].key, stack[n-1].haveKey = v, true
				continue
			}
			emit(v)
		case j.Number:
			emit(models.Number(string(v)))
		case float64:
			emit(models.Number(strconv.FormatFloat(v, 'g', -1, 64)))
		case bool:
			emit(v)
		case nil:
			emit(nil)
		default:
			return models.IntermediateRepresentation{}, errors.NewParsingError(fmt.Sprintf("unexpected token %v", v), errors.ErrInvalidJSON)
		}
	}

	// The token stream is lenient about separators, so the document gets one
	// strict pass for the parser's own syntax message.
	var strict interface{}
	if err := j.Unmarshal(data, &strict); err != nil {
		return models.IntermediateRepresentation{}, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
	}

	_, isArray := root.(models.JSONArray)
	return models.IntermediateRepresentation{
		Root:        root,
		RootIsArray: isArray,
		Depth:       maxSeen,
	}, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	return ParseBytes([]byte(jsonString), DefaultMaxDepth)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, maxDepth int) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseBytes(data, maxDepth)
}
