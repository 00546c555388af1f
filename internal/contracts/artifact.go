package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Foundry artifact locations under the build output directory.
const (
	EngineArtifact = "Engine.sol/Engine.json"
	RouterArtifact = "RouterApprove.sol/RouterApprove.json"
	TokenArtifact  = "MockERC20.sol/MockERC20.json"
)

// Artifact is a compiled contract: ABI plus creation bytecode.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
}

// Artifacts groups the contracts a benchmark run deploys.
type Artifacts struct {
	Engine Artifact
	Router Artifact
	Token  Artifact
}

// LoadArtifacts reads the engine, router, and token artifacts from a Foundry out directory.
func LoadArtifacts(dir string) (Artifacts, error) {
	engine, err := LoadArtifact(filepath.Join(dir, EngineArtifact))
	if err != nil {
		return Artifacts{}, err
	}
	router, err := LoadArtifact(filepath.Join(dir, RouterArtifact))
	if err != nil {
		return Artifacts{}, err
	}
	token, err := LoadArtifact(filepath.Join(dir, TokenArtifact))
	if err != nil {
		return Artifacts{}, err
	}
	return Artifacts{Engine: engine, Router: router, Token: token}, nil
}

// LoadArtifact reads a single Foundry artifact JSON file.
func LoadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("read artifact: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseArtifact(name, data)
}

// ParseArtifact decodes Foundry artifact JSON.
func ParseArtifact(name string, data []byte) (Artifact, error) {
	var raw foundryArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return Artifact{}, fmt.Errorf("parse artifact %s: %w", name, err)
	}
	if len(raw.ABI) == 0 {
		return Artifact{}, fmt.Errorf("artifact %s: missing abi", name)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %s abi: %w", name, err)
	}

	object := strings.TrimSpace(raw.Bytecode.Object)
	if object == "" || object == "0x" {
		return Artifact{}, fmt.Errorf("artifact %s: missing bytecode", name)
	}
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	code, err := hexutil.Decode(object)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %s bytecode: %w", name, err)
	}

	return Artifact{Name: name, ABI: parsed, Bytecode: code}, nil
}

// CreationCode returns the bytecode with ABI-encoded constructor arguments appended.
func (a Artifact) CreationCode(args ...interface{}) ([]byte, error) {
	if len(args) == 0 {
		return append([]byte(nil), a.Bytecode...), nil
	}
	packed, err := a.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s constructor: %w", a.Name, err)
	}
	code := make([]byte, 0, len(a.Bytecode)+len(packed))
	code = append(code, a.Bytecode...)
	return append(code, packed...), nil
}
