package client

import (
	"fmt"
	"strings"

	"github.com/hederacore/hedera-core/pkg/ledger"
)

// ParseNodes parses a comma separated list of nodes in the form
// {shard}.{realm}.{account}@{host}:{port}
func ParseNodes(s string) ([]Node, error) {
	var nodes []Node
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		node, err := ParseNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if len(nodes) <= 0 {
		return nil, fmt.Errorf("%w: %w", ledger.ErrParse, ErrNullNodes)
	}
	return nodes, nil
}

// ParseNode parses a single {shard}.{realm}.{account}@{host}:{port} node
func ParseNode(s string) (Node, error) {
	id, address, ok := strings.Cut(s, "@")
	if !ok || address == "" {
		return Node{}, fmt.Errorf(
			"%w: invalid node %q, expected {shard}.{realm}.{account}@{host}:{port}",
			ledger.ErrParse, s,
		)
	}
	accountID, err := ledger.ParseAccountID(id)
	if err != nil {
		return Node{}, err
	}
	return Node{AccountID: accountID, Address: address}, nil
}
