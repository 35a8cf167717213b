//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binaryName = "remesh"

// Builds the remesh binary into bin/, stamping the version.
func (Build) Binary() error {
	version, err := gitVersion()
	if err != nil {
		version = "0.0.0-dev"
	}
	ldflags := fmt.Sprintf("-X github.com/limbicnation/remesh/cmd.Version=%s", version)
	if _, err := executeCmd("go", withArgs("build", "-ldflags", ldflags, "-o", "bin/"+binaryName, ".")); err != nil {
		return err
	}
	fmt.Printf("Built bin/%s (%s)\n", binaryName, version)
	return nil
}

type Test mg.Namespace

// Runs the full test suite.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

func gitVersion() (string, error) {
	out, err := executeCmd("git", withArgs("describe", "--tags", "--always", "--dirty"))
	if err != nil {
		return "", err
	}
	return trimOutput(out), nil
}
