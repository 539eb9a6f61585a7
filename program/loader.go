package program

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/duet/instr"
	"gopkg.in/yaml.v3"
)

// File is a program loaded from disk.
type File struct {
	Path    string
	Name    string
	Program instr.Program
}

type yamlProgram struct {
	Name         string   `yaml:"name"`
	Instructions []string `yaml:"instructions"`
}

// LoadProgramFile reads a program from disk. Files ending in .yaml or .yml
// hold a name and a list of instructions. Any other file is plain assembly
// text.
func LoadProgramFile(path string) (instr.Program, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return f.Program, nil
}

// LoadFile reads a program and its name from disk. Plain text programs are
// named after the file.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("program: empty path")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	out := &File{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		name, prog, err := DecodeYAML(file)
		if err != nil {
			return nil, fmt.Errorf("program: parse %s: %w", path, err)
		}

		if name != "" {
			out.Name = name
		}
		out.Program = prog
	default:
		prog, err := Parse(file)
		if err != nil {
			return nil, fmt.Errorf("program: parse %s: %w", path, err)
		}

		out.Program = prog
	}

	return out, nil
}

// DecodeYAML reads a YAML program document and returns its name and
// instructions.
func DecodeYAML(r io.Reader) (string, instr.Program, error) {
	var raw yamlProgram

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return "", nil, err
	}

	prog, err := ParseLines(raw.Instructions)
	if err != nil {
		return "", nil, err
	}

	return raw.Name, prog, nil
}
