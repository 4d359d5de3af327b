package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CreateFile will create a file at the given path and file name combination. If the path is the empty string, the
// file will be created in the current working directory.
func CreateFile(path string, fileName string) (*os.File, error) {
	// By default, the path will be the name of the file
	filePath := fileName

	// Check to see if the file needs to be created in another directory or the working directory
	if path != "" {
		// Make the directory, if it does not exist already
		if err := MakeDirectory(path); err != nil {
			return nil, err
		}
		// Since the path is non-empty, concatenate the path with the name of the file
		filePath = filepath.Join(path, fileName)
	}

	// Create the file
	file, err := os.Create(filePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return file, nil
}

// GetFileNameWithoutExtension obtains a filename without the extension. This does not contain any preceding
// directory paths.
func GetFileNameWithoutExtension(filePath string) string {
	return GetFilePathWithoutExtension(filepath.Base(filePath))
}

// GetFilePathWithoutExtension obtains a file path without the extension. This retains all preceding directory paths.
func GetFilePathWithoutExtension(filePath string) string {
	return filePath[:len(filePath)-len(filepath.Ext(filePath))]
}

// MakeDirectory creates a directory at the given path, including any parent directories which do not exist.
// Returns an error, if one occurred.
func MakeDirectory(dirToMake string) error {
	dirInfo, err := os.Stat(dirToMake)
	if err != nil {
		// Directory does not exist, as expected.
		if os.IsNotExist(err) {
			if err = os.MkdirAll(dirToMake, 0755); err != nil {
				return errors.WithStack(err)
			}
			return nil
		}
		// Some other sort of error, throw it
		return errors.WithStack(err)
	}

	// dirToMake exists but is a file, throw an error accordingly
	if !dirInfo.IsDir() {
		return fmt.Errorf("could not create directory '%s' as a file with the same name exists", dirToMake)
	}

	// Directory already exists, good to go
	return nil
}

// MakeDirectoryForFile creates the parent directory of the provided file path, including any parent directories
// which do not exist. Returns an error, if one occurred.
func MakeDirectoryForFile(filePath string) error {
	directory := filepath.Dir(filePath)
	if directory == "." || directory == "" {
		return nil
	}
	return MakeDirectory(directory)
}

// DirectoryExists returns a boolean indicating whether the provided path exists and refers to a directory.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists returns a boolean indicating whether the provided path exists and refers to a file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
