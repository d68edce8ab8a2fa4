package cli

import (
	"io"
	"path/filepath"

	"ddbin-editor/ddbin"
	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ui"
	"github.com/pkg/errors"
)

func findList(file *ddbin.File, name string) (*dobject.ObjectList, error) {
	list, ok := file.List(name)
	if !ok {
		return nil, errors.Errorf(`list "%s" not found`, name)
	}
	return list, nil
}

func findObject(list *dobject.ObjectList, name string) (*dobject.DataObject, error) {
	object, ok := list.Find(name)
	if !ok {
		return nil, errors.Errorf(`object "%s" not found in list "%s"`, name, list.Name)
	}
	return object, nil
}

// editFile loads path, applies edit and saves the result to out, or back to path.
func editFile(codec *ddbin.Codec, path string, options EditOptions, edit func(file *ddbin.File) error) (string, error) {
	file, err := codec.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := edit(file); err != nil {
		return "", err
	}
	destination := path
	if options.Out != "" {
		destination = options.Out
	}
	if err := codec.WriteFile(destination, file); err != nil {
		return "", err
	}
	return destination, nil
}

func StartSetting(codec *ddbin.Codec, cmd SetCmd, stdout io.Writer) error {
	var before, after string
	destination, err := editFile(
		codec, cmd.Path, cmd.EditOptions,
		func(file *ddbin.File) error {
			list, err := findList(file, cmd.List)
			if err != nil {
				return err
			}
			object, err := findObject(list, cmd.Object)
			if err != nil {
				return err
			}
			field, ok := object.Field(cmd.Field)
			if !ok {
				return errors.Errorf(`field "%s" not found in type "%s"`, cmd.Field, object.Type.Name)
			}
			before = field.Text()
			if err := field.SetText(cmd.Value); err != nil {
				return err
			}
			after = field.Text()
			return nil
		},
	)
	if err != nil {
		return err
	}
	newPrinter().Fprintf(
		stdout, "%s/%s.%s: %q -> %q, saved to %s\n",
		cmd.List, cmd.Object, cmd.Field, before, after, destination,
	)
	return nil
}

func StartAdding(codec *ddbin.Codec, cmd AddCmd, stdout io.Writer) error {
	var name string
	destination, err := editFile(
		codec, cmd.Path, cmd.EditOptions,
		func(file *ddbin.File) error {
			list, err := findList(file, cmd.List)
			if err != nil {
				return err
			}
			name = cmd.Name
			if name == "" {
				name = list.NextFreeName(dobject.DefaultObjectNamePrefix)
			}
			if err := list.ValidateObjectName(name); err != nil {
				return err
			}

			var object *dobject.DataObject
			if cmd.From != "" {
				source, err := findObject(list, cmd.From)
				if err != nil {
					return err
				}
				object = source.Clone(name)
			} else {
				object, err = dobject.NewObject(name, list.Type)
				if err != nil {
					return err
				}
			}
			return list.Add(object)
		},
	)
	if err != nil {
		return err
	}
	newPrinter().Fprintf(stdout, "added %s to %s, saved to %s\n", name, cmd.List, destination)
	return nil
}

func StartRemoving(codec *ddbin.Codec, cmd RemoveCmd, stdout io.Writer) error {
	removed := 0
	destination, err := editFile(
		codec, cmd.Path, cmd.EditOptions,
		func(file *ddbin.File) error {
			list, err := findList(file, cmd.List)
			if err != nil {
				return err
			}
			removed = list.Remove(cmd.Names...)
			if removed == 0 {
				return errors.Errorf(`none of the objects were found in list "%s"`, cmd.List)
			}
			return nil
		},
	)
	if err != nil {
		return err
	}
	newPrinter().Fprintf(stdout, "removed %d objects from %s, saved to %s\n", removed, cmd.List, destination)
	return nil
}

func StartInteractive(codec *ddbin.Codec, cmd InteractiveCmd) error {
	file, err := codec.ReadFile(cmd.Path)
	if err != nil {
		return err
	}
	return ui.Start(filepath.Base(cmd.Path), file)
}
