package dao

import (
	"context"
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// Dataset is a lazily evaluated table. Nothing is read from the store until
// Collect or Count is called.
type Dataset interface {
	Columns() []string

	// Where returns a dataset keeping the rows for which the expr-lang boolean
	// expression holds. Columns are referenced by name.
	Where(filter string) (Dataset, error)

	Collect(ctx context.Context) ([]map[string]interface{}, error)
	Count(ctx context.Context) (int, error)
}

type filteredDataset struct {
	parent  Dataset
	filter  string
	program *vm.Program
}

func newFilteredDataset(parent Dataset, filter string) (*filteredDataset, error) {
	variables, err := ExtractVariables(filter)
	if err != nil {
		return nil, err
	}
	if columns := parent.Columns(); len(columns) > 0 {
		columnSet := make(map[string]struct{}, len(columns))
		for _, column := range columns {
			columnSet[column] = struct{}{}
		}
		for _, v := range variables {
			if _, ok := columnSet[v]; !ok {
				return nil, fmt.Errorf("filter references unknown column:%s", v)
			}
		}
	}

	program, err := expr.Compile(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter: %w", err)
	}

	return &filteredDataset{
		parent:  parent,
		filter:  filter,
		program: program,
	}, nil
}

func (d *filteredDataset) Columns() []string {
	return d.parent.Columns()
}

func (d *filteredDataset) Where(filter string) (Dataset, error) {
	return newFilteredDataset(d.parent, fmt.Sprintf("(%s) && (%s)", d.filter, filter))
}

func (d *filteredDataset) Collect(ctx context.Context) ([]map[string]interface{}, error) {
	rows, err := d.parent.Collect(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		output, err := expr.Run(d.program, row)
		if err != nil {
			return nil, fmt.Errorf("evaluate filter error, filter:%s, err=%w", d.filter, err)
		}
		keep, ok := output.(bool)
		if !ok {
			return nil, fmt.Errorf("filter is not a boolean expression, filter:%s", d.filter)
		}
		if keep {
			result = append(result, row)
		}
	}

	return result, nil
}

func (d *filteredDataset) Count(ctx context.Context) (int, error) {
	rows, err := d.Collect(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// columnCollector gathers the identifiers of an expression tree.
type columnCollector map[string]struct{}

func (c columnCollector) Visit(node *ast.Node) {
	if identifier, ok := (*node).(*ast.IdentifierNode); ok {
		c[identifier.Value] = struct{}{}
	}
}

// ExtractVariables returns the sorted column names referenced by a filter expression.
func ExtractVariables(filter string) ([]string, error) {
	tree, err := parser.Parse(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filter:%s, err=%w", filter, err)
	}

	columns := make(columnCollector)
	ast.Walk(&tree.Node, columns)

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
