package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const dataPrefix = ":/data/"

// resolvePath renders a path parameter and, if relative, anchors it to
// the blueprint's working directory.
func resolvePath(ctx *Context, raw string) string {
	rendered := ctx.Renderer.RenderSafe(raw, ctx.TemplateCtx)
	if rendered == "" || filepath.IsAbs(rendered) {
		return rendered
	}
	return filepath.Join(ctx.WorkDir, rendered)
}

// save writes captured_output to a file path, or into the shared summary
// data tree when the destination is a `:/data/...` json-pointer path
// (§4.7: blueprint process steps may contribute data back to the
// project summary under lock).
func save(ctx *Context, param any) (Result, error) {
	dest, ok := param.(string)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}

	if strings.HasPrefix(dest, dataPrefix) {
		ptr := strings.TrimPrefix(dest, dataPrefix)
		ctx.DataMu.Lock()
		setAtPointer(ctx.Data, ptr, ctx.CapturedOutput)
		ctx.DataMu.Unlock()
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
	}

	path := resolvePath(ctx, dest)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	if err := os.WriteFile(path, []byte(ctx.CapturedOutput), 0o644); err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
}

// setAtPointer writes value at the slash-separated path under root,
// creating intermediate maps as needed.
func setAtPointer(root map[string]any, ptr string, value any) {
	segs := strings.Split(strings.Trim(ptr, "/"), "/")
	cur := root
	for i, seg := range segs {
		if i == len(segs)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
}

// createDirectory makes a directory (and its parents) at the rendered path.
func createDirectory(ctx *Context, param any) (Result, error) {
	dest, ok := param.(string)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
	path := resolvePath(ctx, dest)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
}

// verify checks that the rendered path exists, failing the step (negative
// retcode) otherwise, per §4.7's "verify" precondition check.
func verify(ctx *Context, param any) (Result, error) {
	dest, ok := param.(string)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
	path := resolvePath(ctx, dest)
	if _, err := os.Stat(path); err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
	return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
}

// remove deletes a single file at the rendered path.
func remove(ctx *Context, param any) (Result, error) {
	dest, ok := param.(string)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
	path := resolvePath(ctx, dest)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
}

// removeDir deletes a directory tree at the rendered path.
func removeDir(ctx *Context, param any) (Result, error) {
	dest, ok := param.(string)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}
	path := resolvePath(ctx, dest)
	if err := os.RemoveAll(path); err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
}

// copyFiles implements the `copy` blueprint command (§4.7):
// `{source|yaml_list, destination}`. `source` may be a string, an
// array of strings (each copied to the same destination), or an
// object with `folder_paths`/`folders`/`file_paths`/`files` sub-keys,
// each with distinct placement semantics under destination. `update`
// semantics throughout: an existing destination file newer than (or
// as new as) its source is left untouched.
func copyFiles(ctx *Context, param any) (Result, error) {
	spec, ok := param.(map[string]any)
	if !ok {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, fmt.Errorf("copy: expected an object parameter")
	}

	rawDest, _ := spec["destination"].(string)
	if rawDest == "" {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, fmt.Errorf("copy: missing destination")
	}
	destination := resolvePath(ctx, rawDest)

	source, err := copySource(ctx, spec)
	if err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}

	if err := runCopy(ctx, source, destination); err != nil {
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
	}
	return Result{CapturedOutput: ctx.CapturedOutput, Retcode: 0}, nil
}

// copySource resolves the `source` or `yaml_list` key into the raw
// (un-rendered) value the rest of copy works from: a string, a
// []any, or a map[string]any of placement sub-keys.
func copySource(ctx *Context, spec map[string]any) (any, error) {
	if source, ok := spec["source"]; ok {
		return source, nil
	}
	raw, ok := spec["yaml_list"].(string)
	if !ok {
		return nil, fmt.Errorf("copy: missing source or yaml_list")
	}
	rendered := ctx.Renderer.RenderSafe(raw, ctx.TemplateCtx)
	var list []any
	if err := yaml.Unmarshal([]byte(rendered), &list); err != nil {
		return nil, fmt.Errorf("copy: parsing yaml_list: %w", err)
	}
	return list, nil
}

func runCopy(ctx *Context, source any, destination string) error {
	switch v := source.(type) {
	case string:
		return copyMerge(resolvePath(ctx, v), destination)
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("copy: source array entries must be strings")
			}
			if err := copyMerge(resolvePath(ctx, s), destination); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		return copyPlacements(ctx, v, destination)
	default:
		return fmt.Errorf("copy: unsupported source shape %T", source)
	}
}

func copyPlacements(ctx *Context, placements map[string]any, destination string) error {
	if err := copyEach(ctx, placements["folder_paths"], func(src, rendered string) error {
		dest := filepath.Join(destination, rendered)
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return err
		}
		return copyMerge(src, dest)
	}); err != nil {
		return err
	}
	if err := copyEach(ctx, placements["folders"], func(src, _ string) error {
		return copyMerge(src, destination)
	}); err != nil {
		return err
	}
	if err := copyEach(ctx, placements["file_paths"], func(src, rendered string) error {
		dest := filepath.Join(destination, rendered)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		return copyFileUpdating(src, dest)
	}); err != nil {
		return err
	}
	return copyEach(ctx, placements["files"], func(src, rendered string) error {
		dest := filepath.Join(destination, filepath.Base(rendered))
		if err := os.MkdirAll(destination, 0o755); err != nil {
			return err
		}
		return copyFileUpdating(src, dest)
	})
}

// copyEach renders and resolves every entry of a placements sub-key
// list (absent keys are a no-op, matching the original's per-key
// `if (source.contains(...))` checks) and applies fn to each.
func copyEach(ctx *Context, raw any, fn func(resolvedSrc, renderedSrc string) error) error {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return fmt.Errorf("copy: placement entries must be strings")
		}
		rendered := ctx.Renderer.RenderSafe(s, ctx.TemplateCtx)
		if err := fn(resolvePath(ctx, s), rendered); err != nil {
			return err
		}
	}
	return nil
}

// copyMerge copies from into to with update semantics; when from is a
// directory its entries land directly under to (to is created as
// from's root), not nested inside a child named after from.
func copyMerge(from, to string) error {
	info, err := os.Stat(from)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFileUpdating(from, to)
	}
	return filepath.WalkDir(from, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(from, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(to, rel)
		if d.IsDir() {
			return os.MkdirAll(dest, info.Mode().Perm())
		}
		return copyFileUpdating(path, dest)
	})
}

// copyFileUpdating copies a single file, skipping the copy when dest
// already exists and is not older than src (copy_options::update_existing).
func copyFileUpdating(from, to string) error {
	srcInfo, err := os.Stat(from)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(to); err == nil && !dstInfo.ModTime().Before(srcInfo.ModTime()) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return err
	}
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.OpenFile(to, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// cat reads a file's contents into captured_output, or concatenates
// several when given a list (§4.7).
func cat(ctx *Context, param any) (Result, error) {
	var paths []string
	switch v := param.(type) {
	case string:
		paths = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				paths = append(paths, s)
			}
		}
	default:
		return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, nil
	}

	var out strings.Builder
	for i, p := range paths {
		data, err := os.ReadFile(resolvePath(ctx, p))
		if err != nil {
			return Result{CapturedOutput: ctx.CapturedOutput, Retcode: -1}, err
		}
		if i > 0 {
			out.WriteString("\n")
		}
		out.Write(data)
	}
	return Result{CapturedOutput: out.String(), Retcode: 0}, nil
}
