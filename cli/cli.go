package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"ddbin-editor/ddbin"
	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
)

type (
	Args struct {
		Encoding string `arg:"--encoding,env:DDBIN_ENCODING" default:"euc-kr" help:"code page of the texts inside the files" placeholder:"LABEL"`
		Verbose  bool   `arg:"-v,--verbose" help:"log decoding warnings to stderr"`

		Info        *InfoCmd        `arg:"subcommand:info" help:"print the schema and lists of a file"`
		Export      *ExportCmd      `arg:"subcommand:export" help:"export files to XML"`
		JSON        *JSONCmd        `arg:"subcommand:json" help:"dump files to ordered JSON"`
		Convert     *ConvertCmd     `arg:"subcommand:convert" help:"decode and re-encode files"`
		Set         *SetCmd         `arg:"subcommand:set" help:"change the value of one field"`
		Add         *AddCmd         `arg:"subcommand:add" help:"add an object to a list"`
		Remove      *RemoveCmd      `arg:"subcommand:remove" help:"remove objects from a list"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive" help:"browse a file in the terminal"`
	}
	InfoCmd struct {
		Path string `arg:"positional,required" placeholder:"FILE"`
	}
	BatchOptions struct {
		Out     string `arg:"-o,--out" help:"destination directory, defaults to the directory of each file" placeholder:"DIR"`
		Force   bool   `help:"overwrite existing destination files"`
		Workers int    `arg:"--workers,env:DDBIN_WORKERS" default:"4" help:"number of files processed at once"`
	}
	ExportCmd struct {
		Paths []string `arg:"positional,required" placeholder:"FILE"`
		List  string   `arg:"-l,--list" help:"export only this list"`
		Gzip  bool     `help:"compress the output"`
		BatchOptions
	}
	JSONCmd struct {
		Paths  []string `arg:"positional" placeholder:"FILE"`
		Schema bool     `help:"print the JSON Schema of the dump document and exit"`
		Gzip   bool     `help:"compress the output"`
		BatchOptions
	}
	ConvertCmd struct {
		Paths []string `arg:"positional,required" placeholder:"FILE"`
		BatchOptions
	}
	EditOptions struct {
		Out string `arg:"-o,--out" help:"write the result here instead of overwriting the file" placeholder:"FILE"`
	}
	SetCmd struct {
		Path   string `arg:"positional,required" placeholder:"FILE"`
		List   string `arg:"-l,--list,required"`
		Object string `arg:"--object,required"`
		Field  string `arg:"-f,--field,required"`
		Value  string `arg:"--value,required"`
		EditOptions
	}
	AddCmd struct {
		Path string `arg:"positional,required" placeholder:"FILE"`
		List string `arg:"-l,--list,required"`
		Name string `arg:"-n,--name" help:"name of the new object, defaults to the next free NewObjectN"`
		From string `help:"copy the values of this object"`
		EditOptions
	}
	RemoveCmd struct {
		Path  string   `arg:"positional,required" placeholder:"FILE"`
		Names []string `arg:"positional,required" placeholder:"OBJECT"`
		List  string   `arg:"-l,--list,required"`
		EditOptions
	}
	InteractiveCmd struct {
		Path string `arg:"positional,required" placeholder:"FILE"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"A command line editor for DDBIN data files (\"DDBINFILE\" .data).",
			"Inspect, export and edit typed records without leaving the terminal.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

func CreateCodec(args Args, stderr io.Writer) (*ddbin.Codec, error) {
	config := ddbin.DefaultConfig()
	enc, err := htmlindex.Get(args.Encoding)
	if err != nil {
		err := errors.Wrapf(err, `unknown encoding "%s"`, args.Encoding)
		return nil, err
	}
	config.Encoding = enc
	if args.Verbose {
		config.Logger = log.New(stderr, "ddbin: ", 0)
	}
	return ddbin.NewCodec(config), nil
}

// Run executes the parsed subcommand, writing reports to stdout.
func Run(args Args, stdout io.Writer, stderr io.Writer) error {
	codec, err := CreateCodec(args, stderr)
	if err != nil {
		return err
	}

	switch {
	case args.Info != nil:
		return StartInfo(codec, *args.Info, stdout)
	case args.Export != nil:
		return StartExporting(codec, *args.Export, stdout)
	case args.JSON != nil:
		return StartDumping(codec, *args.JSON, stdout)
	case args.Convert != nil:
		return StartConverting(codec, *args.Convert, stdout)
	case args.Set != nil:
		return StartSetting(codec, *args.Set, stdout)
	case args.Add != nil:
		return StartAdding(codec, *args.Add, stdout)
	case args.Remove != nil:
		return StartRemoving(codec, *args.Remove, stdout)
	case args.Interactive != nil:
		return StartInteractive(codec, *args.Interactive)
	}
	return errors.New("no command given, see --help")
}

func Start() {
	args := Args{}
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.WriteHelp(os.Stdout)
		os.Exit(2)
	}

	if err := Run(args, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
