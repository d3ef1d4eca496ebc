package edit

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/poppingmoon/slang/internal/config"
	"github.com/poppingmoon/slang/internal/tree"
)

// NoOriginValues is the summary for a move or copy whose origin path is
// absent from every file. A normal outcome, not an error.
const NoOriginValues = "no origin values found"

// Action names what an operation did to one file.
type Action string

const (
	ActionRenamed  Action = "renamed"
	ActionDeleted  Action = "deleted"
	ActionInserted Action = "inserted"
	ActionFlagged  Action = "flagged outdated"
	ActionAdded    Action = "added"
)

// Touch records one file mutation.
type Touch struct {
	File   string
	Action Action
	Path   string
}

// Result is the structured outcome of one operation; the command layer
// renders it into progress lines.
type Result struct {
	Operation string
	Touched   []Touch
	Message   string
}

// Engine applies one operation per invocation as a single pass over the
// collection. It holds no tree state; every touched file is read, mutated,
// and written exactly once.
type Engine struct {
	coll *Collection
}

func NewEngine(c *Collection) *Engine {
	return &Engine{coll: c}
}

// split strips the namespace segment from a logical path when namespace
// mode is on. Paths without a segment after the namespace are a usage
// error, rejected before any file is touched.
func (e *Engine) split(p tree.Path) (string, tree.Path, error) {
	if !e.coll.Config.Namespaces {
		return "", p, nil
	}
	return p.Namespace()
}

// isRename reports whether a move stays in place: equal segment count,
// same namespace segment (when namespace mode is on), and every segment
// but the last pairwise equal.
func isRename(origin, destination tree.Path, namespaces bool) bool {
	if origin.Len() != destination.Len() {
		return false
	}
	os, ds := origin.Segments(), destination.Segments()
	if namespaces && os[0].Key != ds[0].Key {
		return false
	}
	for i := 0; i < len(os)-1; i++ {
		if os[i].Key != ds[i].Key {
			return false
		}
	}
	return true
}

// Move relocates a value from origin to destination. A rename updates the
// key in place per file; anything else deletes at the origin and inserts
// the captured value into every same-locale file matching the destination
// namespace.
func (e *Engine) Move(originArg, destinationArg string) (*Result, error) {
	origin, err := tree.ParsePath(originArg)
	if err != nil {
		return nil, err
	}
	destination, err := tree.ParsePath(destinationArg)
	if err != nil {
		return nil, err
	}
	originNS, originPath, err := e.split(origin)
	if err != nil {
		return nil, err
	}
	destNS, destPath, err := e.split(destination)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: "move"}
	if isRename(origin, destination, e.coll.Config.Namespaces) {
		newKey := destPath.Last().Key
		for _, f := range e.coll.Files {
			if !e.coll.namespaceMatch(f, originNS) {
				continue
			}
			root, err := f.ReadTree(e.coll.FS, e.coll.Codecs)
			if err != nil {
				return nil, err
			}
			if _, ok := tree.Get(root, originPath); !ok {
				continue
			}
			// Update refuses the swap when newKey already names another
			// entry; the origin was just resolved, so false means exactly
			// that conflict.
			updated := tree.Update(root, originPath, func(_ string, v tree.Node) (string, tree.Node) {
				return newKey, v
			})
			if !updated {
				return nil, fmt.Errorf("%s: cannot rename %q to %q: destination key already exists", f.Path, originArg, destinationArg)
			}
			if err := f.WriteTree(e.coll.FS, e.coll.Codecs, root); err != nil {
				return nil, err
			}
			res.Touched = append(res.Touched, Touch{File: f.Path, Action: ActionRenamed, Path: destinationArg})
		}
		if len(res.Touched) == 0 {
			res.Message = NoOriginValues
		}
		return res, nil
	}

	captured := make(map[language.Tag]tree.Node)
	for _, f := range e.coll.Files {
		if !e.coll.namespaceMatch(f, originNS) {
			continue
		}
		root, err := f.ReadTree(e.coll.FS, e.coll.Codecs)
		if err != nil {
			return nil, err
		}
		v, ok := tree.Get(root, originPath)
		if !ok {
			continue
		}
		tree.Delete(root, originPath)
		if err := f.WriteTree(e.coll.FS, e.coll.Codecs, root); err != nil {
			return nil, err
		}
		captured[f.Locale] = v
		res.Touched = append(res.Touched, Touch{File: f.Path, Action: ActionDeleted, Path: originArg})
	}
	if len(captured) == 0 {
		res.Message = NoOriginValues
		return res, nil
	}
	if err := e.insertCaptured(res, captured, destNS, destPath, destinationArg); err != nil {
		return nil, err
	}
	return res, nil
}

// Copy captures origin values without mutating any origin file, then
// inserts an independent deep copy into every matching destination file.
func (e *Engine) Copy(originArg, destinationArg string) (*Result, error) {
	origin, err := tree.ParsePath(originArg)
	if err != nil {
		return nil, err
	}
	destination, err := tree.ParsePath(destinationArg)
	if err != nil {
		return nil, err
	}
	originNS, originPath, err := e.split(origin)
	if err != nil {
		return nil, err
	}
	destNS, destPath, err := e.split(destination)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: "copy"}
	captured := make(map[language.Tag]tree.Node)
	for _, f := range e.coll.Files {
		if !e.coll.namespaceMatch(f, originNS) {
			continue
		}
		root, err := f.ReadTree(e.coll.FS, e.coll.Codecs)
		if err != nil {
			return nil, err
		}
		if v, ok := tree.Get(root, originPath); ok {
			captured[f.Locale] = v
		}
	}
	if len(captured) == 0 {
		res.Message = NoOriginValues
		return res, nil
	}
	if err := e.insertCaptured(res, captured, destNS, destPath, destinationArg); err != nil {
		return nil, err
	}
	return res, nil
}

// insertCaptured writes a deep copy of each locale's captured value into
// every destination-namespace file of the same locale. Copies share no
// structure, so later edits to one file cannot leak into another.
func (e *Engine) insertCaptured(res *Result, captured map[language.Tag]tree.Node, destNS string, destPath tree.Path, destArg string) error {
	for _, f := range e.coll.Files {
		if !e.coll.namespaceMatch(f, destNS) {
			continue
		}
		v, ok := captured[f.Locale]
		if !ok {
			continue
		}
		root, err := f.ReadTree(e.coll.FS, e.coll.Codecs)
		if err != nil {
			return err
		}
		if err := tree.Add(root, destPath, tree.Clone(v)); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		if err := f.WriteTree(e.coll.FS, e.coll.Codecs, root); err != nil {
			return err
		}
		res.Touched = append(res.Touched, Touch{File: f.Path, Action: ActionInserted, Path: destArg})
	}
	return nil
}

// Delete removes the entry at path from every namespace-matching file.
// Absent entries are not an error; the file is rewritten either way,
// matching the no-presence-check semantics of the original tooling.
func (e *Engine) Delete(pathArg string) (*Result, error) {
	p, err := tree.ParsePath(pathArg)
	if err != nil {
		return nil, err
	}
	ns, rest, err := e.split(p)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: "delete"}
	for _, f := range e.coll.Files {
		if !e.coll.namespaceMatch(f, ns) {
			continue
		}
		root, err := f.ReadTree(e.coll.FS, e.coll.Codecs)
		if err != nil {
			return nil, err
		}
		tree.Delete(root, rest)
		if err := f.WriteTree(e.coll.FS, e.coll.Codecs, root); err != nil {
			return nil, err
		}
		res.Touched = append(res.Touched, Touch{File: f.Path, Action: ActionDeleted, Path: pathArg})
	}
	return res, nil
}

// Outdated flags the entry at path as stale in every non-base-locale file
// matching the namespace. The base locale is what translations are
// authored against, so it is always skipped.
func (e *Engine) Outdated(pathArg string) (*Result, error) {
	p, err := tree.ParsePath(pathArg)
	if err != nil {
		return nil, err
	}
	ns, rest, err := e.split(p)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: "outdated"}
	for _, f := range e.coll.Files {
		if !e.coll.namespaceMatch(f, ns) {
			continue
		}
		if f.Locale == e.coll.Config.BaseLocale {
			continue
		}
		root, err := f.ReadTree(e.coll.FS, e.coll.Codecs)
		if err != nil {
			return nil, err
		}
		updated := tree.Update(root, rest, func(k string, v tree.Node) (string, tree.Node) {
			return WithOutdated(k), v
		})
		if !updated {
			continue
		}
		if err := f.WriteTree(e.coll.FS, e.coll.Codecs, root); err != nil {
			return nil, err
		}
		res.Touched = append(res.Touched, Touch{File: f.Path, Action: ActionFlagged, Path: pathArg})
	}
	return res, nil
}

// Add inserts value at path into every file of the given locale whose
// namespace matches, creating intermediate structure as needed.
func (e *Engine) Add(localeArg, pathArg, value string) (*Result, error) {
	locale, err := config.ParseLocale(localeArg)
	if err != nil {
		return nil, err
	}
	p, err := tree.ParsePath(pathArg)
	if err != nil {
		return nil, err
	}
	ns, rest, err := e.split(p)
	if err != nil {
		return nil, err
	}

	res := &Result{Operation: "add"}
	for _, f := range e.coll.Files {
		if f.Locale != locale || !e.coll.namespaceMatch(f, ns) {
			continue
		}
		root, err := f.ReadTree(e.coll.FS, e.coll.Codecs)
		if err != nil {
			return nil, err
		}
		if err := tree.Add(root, rest, tree.Scalar(value)); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		if err := f.WriteTree(e.coll.FS, e.coll.Codecs, root); err != nil {
			return nil, err
		}
		res.Touched = append(res.Touched, Touch{File: f.Path, Action: ActionAdded, Path: pathArg})
	}
	return res, nil
}

// WithOutdated returns key carrying the OUTDATED modifier. An existing
// modifier list is extended; a key already flagged is returned unchanged.
func WithOutdated(key string) string {
	open := strings.Index(key, "(")
	if open < 0 || !strings.HasSuffix(key, ")") {
		return key + "(OUTDATED)"
	}
	for _, m := range strings.Split(key[open+1:len(key)-1], ",") {
		if strings.TrimSpace(m) == "OUTDATED" {
			return key
		}
	}
	return key[:len(key)-1] + ",OUTDATED)"
}
