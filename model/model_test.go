package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stevemurr/market/model"
)

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", model.Client{Name: "Ada", Surname: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", model.Client{Name: "Ada"}.FullName())
}

func TestInStock(t *testing.T) {
	assert.False(t, model.Product{Stock: 0}.InStock())
	assert.True(t, model.Product{Stock: 1}.InStock())
}
