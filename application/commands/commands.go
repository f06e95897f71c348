package commands

import (
	"graphstore/domain/core/entities"
	"graphstore/pkg/errors"
)

// AddNodesCommand adds nodes in input order
type AddNodesCommand struct {
	Nodes []entities.Node `json:"nodes"`
}

func (c AddNodesCommand) Validate() error {
	if len(c.Nodes) == 0 {
		return errors.NewInvalidArgumentError("nodes cannot be empty")
	}
	return nil
}

// UpdateNodesCommand applies partial node updates identified by name
type UpdateNodesCommand struct {
	Updates []entities.NodeUpdate `json:"updates"`
}

func (c UpdateNodesCommand) Validate() error {
	if len(c.Updates) == 0 {
		return errors.NewInvalidArgumentError("updates cannot be empty")
	}
	return nil
}

// DeleteNodesCommand removes nodes by name, idempotently
type DeleteNodesCommand struct {
	Names []string `json:"names"`
}

func (c DeleteNodesCommand) Validate() error {
	if len(c.Names) == 0 {
		return errors.NewInvalidArgumentError("names cannot be empty")
	}
	for _, name := range c.Names {
		if name == "" {
			return errors.NewInvalidArgumentError("names contains an empty name")
		}
	}
	return nil
}

// AddEdgesCommand adds edges in input order
type AddEdgesCommand struct {
	Edges []entities.Edge `json:"edges"`
}

func (c AddEdgesCommand) Validate() error {
	if len(c.Edges) == 0 {
		return errors.NewInvalidArgumentError("edges cannot be empty")
	}
	return nil
}

// UpdateEdgesCommand rewrites edges identified by their original keys
type UpdateEdgesCommand struct {
	Updates []entities.EdgeUpdate `json:"updates"`
}

func (c UpdateEdgesCommand) Validate() error {
	if len(c.Updates) == 0 {
		return errors.NewInvalidArgumentError("updates cannot be empty")
	}
	return nil
}

// DeleteEdgesCommand removes edges by exact composite key, idempotently
type DeleteEdgesCommand struct {
	Edges []entities.Edge `json:"edges"`
}

func (c DeleteEdgesCommand) Validate() error {
	if len(c.Edges) == 0 {
		return errors.NewInvalidArgumentError("edges cannot be empty")
	}
	return nil
}

// AddMetadataCommand appends metadata strings per node name
type AddMetadataCommand struct {
	Requests []entities.MetadataRequest `json:"requests"`
}

func (c AddMetadataCommand) Validate() error {
	if len(c.Requests) == 0 {
		return errors.NewInvalidArgumentError("requests cannot be empty")
	}
	for _, req := range c.Requests {
		if req.NodeName == "" {
			return errors.NewInvalidArgumentError("request is missing a node name")
		}
	}
	return nil
}

// DeleteMetadataCommand removes metadata strings per node name
type DeleteMetadataCommand struct {
	Requests []entities.MetadataRequest `json:"requests"`
}

func (c DeleteMetadataCommand) Validate() error {
	if len(c.Requests) == 0 {
		return errors.NewInvalidArgumentError("requests cannot be empty")
	}
	for _, req := range c.Requests {
		if req.NodeName == "" {
			return errors.NewInvalidArgumentError("request is missing a node name")
		}
	}
	return nil
}

// BeginTransactionCommand opens a transaction
type BeginTransactionCommand struct{}

func (c BeginTransactionCommand) Validate() error { return nil }

// CommitTransactionCommand commits the active transaction
type CommitTransactionCommand struct{}

func (c CommitTransactionCommand) Validate() error { return nil }

// RollbackTransactionCommand rolls back the active transaction
type RollbackTransactionCommand struct{}

func (c RollbackTransactionCommand) Validate() error { return nil }
