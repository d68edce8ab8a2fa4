package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ddbin-editor/ddbin"
	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ddbin/dschema"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSampleFile(t *testing.T) *ddbin.File {
	r := require.New(t)
	file := ddbin.NewFile()
	typeDefinition := dschema.NewTypeDefinition("npc", 12)
	for _, args := range []struct {
		name     string
		offset   int
		readType dschema.ReadType
		varType  dschema.VarType
	}{
		{"level", 0, dschema.ReadTypeBin, dschema.VarTypeInteger},
		{"tint", 4, dschema.ReadTypeBin, dschema.VarTypeColor},
		{"title", 8, dschema.ReadTypeString, dschema.VarTypeString},
	} {
		field, err := dschema.NewFieldDefinition(args.name, args.offset, args.readType, 4, args.varType)
		r.NoError(err)
		typeDefinition.AddField(field)
	}
	file.AddType(typeDefinition)

	list := dobject.NewObjectList("npcs", typeDefinition)
	for _, args := range []struct {
		name  string
		level string
		title string
	}{
		{"nao", "50", "소울 스트림"},
		{"duncan", "30", "촌장"},
	} {
		object, err := dobject.NewObject(args.name, typeDefinition)
		r.NoError(err)
		level, _ := object.Field("level")
		r.NoError(level.SetText(args.level))
		title, _ := object.Field("title")
		r.NoError(title.SetText(args.title))
		r.NoError(list.Add(object))
	}
	r.NoError(file.AddList(list))
	return file
}

func writeSampleFile(t *testing.T, dir string, name string) string {
	path := filepath.Join(dir, name)
	codec := ddbin.NewCodec(ddbin.DefaultConfig())
	require.NoError(t, codec.WriteFile(path, createSampleFile(t)))
	return path
}

func run(t *testing.T, args Args) (string, error) {
	if args.Encoding == "" {
		args.Encoding = "euc-kr"
	}
	stdout := bytes.Buffer{}
	err := Run(args, &stdout, io.Discard)
	return stdout.String(), err
}

func TestDestinationPath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b.xml"), DestinationPath(filepath.Join("a", "b.data"), "", ".xml", false))
	assert.Equal(t, filepath.Join("out", "b.json.gz"), DestinationPath("b.data", "out", ".json", true))
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "npc.xml")
	broken := func(w io.Writer) error {
		_, _ = io.WriteString(w, "<partial")
		return errors.New("render failed")
	}

	assert.Error(t, WriteOutput(path, false, false, broken))
	assert.False(t, CheckExistence(path))

	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))
	assert.Error(t, WriteOutput(path, true, true, broken))
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("previous"), bs)

	err = WriteOutput(path, false, false, func(w io.Writer) error { return nil })
	assert.ErrorContains(t, err, "--force")

	require.NoError(t, WriteOutput(path, true, false, func(w io.Writer) error {
		_, err := io.WriteString(w, "<done/>")
		return err
	}))
	bs, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("<done/>"), bs)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunBatch(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}
	results := RunBatch(
		paths,
		2,
		func(path string) BatchResult {
			if path == "c" {
				return BatchResult{Err: errors.New("broken")}
			}
			return BatchResult{Destination: strings.ToUpper(path)}
		},
	)
	require.Len(t, results, len(paths))
	for i, result := range results {
		assert.Equal(t, paths[i], result.Source)
	}
	assert.Equal(t, "E", results[4].Destination)

	buf := bytes.Buffer{}
	err := ReportBatch(&buf, "Done", results)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "FAIL c: broken")
	assert.Contains(t, buf.String(), "Done 4 of 5 files")
}

func TestRun_UnknownEncoding(t *testing.T) {
	_, err := run(t, Args{Encoding: "klingon", Info: &InfoCmd{Path: "x"}})
	assert.Error(t, err)
}

func TestRun_Info(t *testing.T) {
	path := writeSampleFile(t, t.TempDir(), "npc.data")
	output, err := run(t, Args{Info: &InfoCmd{Path: path}})
	require.NoError(t, err)
	assert.Contains(t, output, "DDBIN 2.0.48")
	assert.Contains(t, output, "1 types, 1 lists, 2 objects")
	assert.Contains(t, output, "title@8#4,String")
	assert.Contains(t, output, "npcs: 2 objects of npc (1 Integer, 1 Color, 1 String)")
}

func TestRun_Export(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleFile(t, dir, "npc.data")
	out := t.TempDir()

	cmd := &ExportCmd{Paths: []string{path}, Gzip: true}
	cmd.Out = out
	cmd.Workers = 2
	output, err := run(t, Args{Export: cmd})
	require.NoError(t, err)
	assert.Contains(t, output, "Exported 1 of 1 files")

	f, err := os.Open(filepath.Join(out, "npc.xml.gz"))
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	bs, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `<npc _ObjName="nao" level="50" tint="00000000" title="소울 스트림"></npc>`)

	_, err = run(t, Args{Export: cmd})
	assert.Error(t, err)
}

func TestRun_ExportMissingList(t *testing.T) {
	path := writeSampleFile(t, t.TempDir(), "npc.data")
	cmd := &ExportCmd{Paths: []string{path}, List: "mobs"}
	output, err := run(t, Args{Export: cmd})
	assert.Error(t, err)
	assert.Contains(t, output, `list "mobs" not found`)
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleFile(t, dir, "npc.data")
	_, err := run(t, Args{JSON: &JSONCmd{Paths: []string{path}}})
	require.NoError(t, err)

	bs, err := os.ReadFile(filepath.Join(dir, "npc.json"))
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"_ObjName": "duncan"`)

	document := struct {
		Version string `json:"version"`
		Lists   []struct {
			Objects []json.RawMessage `json:"objects"`
		} `json:"lists"`
	}{}
	require.NoError(t, json.Unmarshal(bs, &document))
	assert.Equal(t, "2.0.48", document.Version)
	require.Len(t, document.Lists, 1)
	require.Len(t, document.Lists[0].Objects, 2)

	object := string(document.Lists[0].Objects[0])
	keys := []string{`"_ObjName"`, `"level"`, `"tint"`, `"title"`}
	for i := 1; i < len(keys); i++ {
		assert.Less(t, strings.Index(object, keys[i-1]), strings.Index(object, keys[i]))
	}
	assert.Contains(t, object, `"level": 50`)
}

func TestRun_JSONSchema(t *testing.T) {
	output, err := run(t, Args{JSON: &JSONCmd{Schema: true}})
	require.NoError(t, err)
	assert.Contains(t, output, "DDBIN dump")
	assert.Contains(t, output, "var_type")
}

func TestDumpValue(t *testing.T) {
	assert.Nil(t, DumpValue(nil))
	assert.Equal(t, "FF000000", DumpValue(dobject.ColorValue(0xFF000000)))
	assert.Equal(t, float32(1.5), DumpValue(dobject.FloatValue(1.5)))
	assert.Equal(t, uint8(3), DumpValue(dobject.ByteValue(3)))
}

func TestRun_Convert(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleFile(t, dir, "npc.data")

	cmd := &ConvertCmd{Paths: []string{path}}
	_, err := run(t, Args{Convert: cmd})
	assert.Error(t, err)

	cmd.Force = true
	output, err := run(t, Args{Convert: cmd})
	require.NoError(t, err)
	assert.Contains(t, output, "(identical)")
}

func TestRun_Edit(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleFile(t, dir, "npc.data")

	set := &SetCmd{Path: path, List: "npcs", Object: "nao", Field: "tint", Value: "ff8000ff"}
	output, err := run(t, Args{Set: set})
	require.NoError(t, err)
	assert.Contains(t, output, `"00000000" -> "FF8000FF"`)

	set.Value = "not a color"
	_, err = run(t, Args{Set: set})
	assert.True(t, errors.As(err, &dobject.ErrValidation{}))

	_, err = run(t, Args{Add: &AddCmd{Path: path, List: "npcs", From: "nao"}})
	require.NoError(t, err)
	_, err = run(t, Args{Add: &AddCmd{Path: path, List: "npcs", Name: "nao"}})
	assert.Error(t, err)

	output, err = run(t, Args{Remove: &RemoveCmd{Path: path, List: "npcs", Names: []string{"duncan", "ghost"}}})
	require.NoError(t, err)
	assert.Contains(t, output, "removed 1 objects")

	file, err := ddbin.NewCodec(ddbin.DefaultConfig()).ReadFile(path)
	require.NoError(t, err)
	list, _ := file.List("npcs")
	assert.Equal(t, []string{"nao", "NewObject1"}, list.Names())
	clone, _ := list.Find("NewObject1")
	tint, _ := clone.Field("tint")
	assert.Equal(t, dobject.ColorValue(0xFF8000FF), tint.Value)
	title, _ := clone.Field("title")
	assert.Equal(t, "소울 스트림", title.Text())
}
