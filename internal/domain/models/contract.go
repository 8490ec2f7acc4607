package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Contract represents a compiled contract discovered on disk
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path,omitempty"`
	ArtifactPath string    `json:"artifactPath"`
	Artifact     *Artifact `json:"-"`
}

// Artifact is the subset of a Foundry or Hardhat compilation artifact needed to deploy
type Artifact struct {
	ContractName string          `json:"contractName,omitempty"`
	SourceName   string          `json:"sourceName,omitempty"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     Bytecode        `json:"bytecode"`
}

// Bytecode holds creation bytecode. Foundry writes it as {"object": "0x.."},
// Hardhat as a plain hex string.
type Bytecode struct {
	Object string `json:"object"`
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		b.Object = hex
		return nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("bytecode must be a hex string or an object: %w", err)
	}
	b.Object = obj.Object
	return nil
}

// IsEmpty reports whether there is no creation code (interfaces, abstract contracts)
func (b Bytecode) IsEmpty() bool {
	trimmed := strings.TrimPrefix(b.Object, "0x")
	return trimmed == ""
}

// IsLinked reports whether every library placeholder has been resolved
func (b Bytecode) IsLinked() bool {
	return !strings.Contains(b.Object, "__")
}

// Bytes decodes the creation bytecode
func (b Bytecode) Bytes() ([]byte, error) {
	object := b.Object
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	code, err := hexutil.Decode(object)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode: %w", err)
	}
	return code, nil
}
