/*
 * Copyright (c) 2026-present unTill Software Development Group B.V.
 */

package featuretypes

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/maps"

	"github.com/voedger/searchschema/pkg/expression"
	"github.com/voedger/searchschema/pkg/tensor"
)

func NewBuilder() *Builder {
	return &Builder{
		types:     map[string]tensor.Type{},
		functions: map[string]*expression.Function{},
		memoSize:  DefaultMemoSize,
	}
}

// Sets type of feature. Key is canonical feature reference, like `query(q)`
func (b *Builder) Set(key string, t tensor.Type) *Builder {
	b.types[key] = t
	return b
}

// Returns type of feature set before
func (b *Builder) Type(key string) (tensor.Type, bool) {
	t, ok := b.types[key]
	return t, ok
}

// Sets function available for calls
func (b *Builder) SetFunction(f *expression.Function) *Builder {
	b.functions[f.Name] = f
	return b
}

func (b *Builder) SetMemoSize(size int) *Builder {
	b.memoSize = size
	return b
}

// Returns new top-level context. Builder may be reused after build
func (b *Builder) Build() *Context {
	memo, err := lru.New[string, tensor.Type](b.memoSize)
	if err != nil {
		// only possible for non-positive size
		panic(err)
	}
	return &Context{types: maps.Clone(b.types), functions: maps.Clone(b.functions), memo: memo}
}
