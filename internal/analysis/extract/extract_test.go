package extract

import (
	"testing"

	"github.com/buemura/scout/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_UnsupportedLanguage(t *testing.T) {
	assert.Empty(t, Extract("data.json", `{"a": 1}`, types.LangJSON))
	assert.Empty(t, Extract("blob.bin", "whatever", types.LangUnknown))
}

func TestExtract_Python(t *testing.T) {
	text := `import os

class Greeter:
    def __init__(self, name):
        self.name = name

    def greet(self):
        return "hi " + self.name

def main():
    g = Greeter("world")
    print(g.greet())
`

	entities := Extract("a.py", text, types.LangPython)
	require.Len(t, entities, 4)

	assert.Equal(t, types.Entity{Name: "Greeter", Kind: types.KindClass, File: "a.py", StartLine: 3, EndLine: 8}, entities[0])
	assert.Equal(t, types.KindMethod, entities[1].Kind)
	assert.Equal(t, "__init__", entities[1].Name)
	assert.Equal(t, types.Entity{Name: "greet", Kind: types.KindMethod, File: "a.py", StartLine: 7, EndLine: 8}, entities[2])
	assert.Equal(t, types.Entity{Name: "main", Kind: types.KindFunction, File: "a.py", StartLine: 10, EndLine: 12}, entities[3])
}

func TestExtract_PythonBodylessDef(t *testing.T) {
	entities := Extract("a.py", "def stub():\n", types.LangPython)
	require.Len(t, entities, 1)
	// End undeterminable: zero-length span, never an error.
	assert.Equal(t, entities[0].StartLine, entities[0].EndLine)
}

func TestExtract_PythonOrderIsDeclarationOrder(t *testing.T) {
	text := "def b():\n    pass\n\ndef a():\n    pass\n"
	entities := Extract("a.py", text, types.LangPython)
	require.Len(t, entities, 2)
	assert.Equal(t, "b", entities[0].Name)
	assert.Equal(t, "a", entities[1].Name)
}

func TestExtract_Go(t *testing.T) {
	text := `package demo

type Store struct {
	data map[string]string
}

func (s *Store) Get(key string) string {
	return s.data[key]
}

func NewStore() *Store {
	return &Store{data: map[string]string{}}
}
`

	entities := Extract("store.go", text, types.LangGo)
	require.Len(t, entities, 3)

	assert.Equal(t, types.Entity{Name: "Store", Kind: types.KindClass, File: "store.go", StartLine: 3, EndLine: 5}, entities[0])
	assert.Equal(t, types.Entity{Name: "Get", Kind: types.KindMethod, File: "store.go", StartLine: 7, EndLine: 9}, entities[1])
	assert.Equal(t, types.Entity{Name: "NewStore", Kind: types.KindFunction, File: "store.go", StartLine: 11, EndLine: 13}, entities[2])
}

func TestExtract_JavaScript(t *testing.T) {
	text := `class Cart {
  constructor() {
    this.items = [];
  }

  add(item) {
    this.items.push(item);
  }
}

function checkout(cart) {
  return cart.items.length;
}

const total = (cart) => cart.items.length;
`

	entities := Extract("cart.js", text, types.LangJavaScript)
	require.Len(t, entities, 5)

	assert.Equal(t, "Cart", entities[0].Name)
	assert.Equal(t, types.KindClass, entities[0].Kind)
	assert.Equal(t, 9, entities[0].EndLine)
	assert.Equal(t, "constructor", entities[1].Name)
	assert.Equal(t, types.KindMethod, entities[1].Kind)
	assert.Equal(t, "add", entities[2].Name)
	assert.Equal(t, types.KindMethod, entities[2].Kind)
	assert.Equal(t, "checkout", entities[3].Name)
	assert.Equal(t, types.KindFunction, entities[3].Kind)
	assert.Equal(t, "total", entities[4].Name)
	assert.Equal(t, types.KindFunction, entities[4].Kind)
}

func TestExtract_Java(t *testing.T) {
	text := `public class Account {
    private int balance;

    public void deposit(int amount) {
        balance += amount;
    }

    public int getBalance() { return balance; }
}
`

	entities := Extract("Account.java", text, types.LangJava)
	require.Len(t, entities, 3)
	assert.Equal(t, types.KindClass, entities[0].Kind)
	assert.Equal(t, "Account", entities[0].Name)
	assert.Equal(t, "deposit", entities[1].Name)
	assert.Equal(t, types.KindMethod, entities[1].Kind)
	assert.Equal(t, "getBalance", entities[2].Name)
}

func TestExtract_C(t *testing.T) {
	text := `#include <stdio.h>

static int add(int a, int b) {
    return a + b;
}

int main(void)
{
    printf("%d\n", add(1, 2));
    return 0;
}
`

	entities := Extract("main.c", text, types.LangC)
	require.Len(t, entities, 2)
	assert.Equal(t, types.Entity{Name: "add", Kind: types.KindFunction, File: "main.c", StartLine: 3, EndLine: 5}, entities[0])
	assert.Equal(t, "main", entities[1].Name)
	assert.Equal(t, 7, entities[1].StartLine)
	assert.Equal(t, 11, entities[1].EndLine)
}

func TestExtract_ControlFlowNotMistakenForDeclarations(t *testing.T) {
	text := `int main(void) {
    if (x) {
        while (y) {
        }
    }
    return 0;
}
`
	entities := Extract("main.c", text, types.LangC)
	require.Len(t, entities, 1)
	assert.Equal(t, "main", entities[0].Name)
}
