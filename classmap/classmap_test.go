package classmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIntrospector reports computed-property getters from a fixed set
type fakeIntrospector struct {
	getters map[string]bool // "class.method" -> true
}

func (f *fakeIntrospector) HasComputedGetter(class, method string) bool {
	return f.getters[class+"."+method]
}

func TestEnsureClass_Idempotent(t *testing.T) {
	cm := New(nil)

	first := cm.EnsureClass("bank.accounts.Account")
	second := cm.EnsureClass("bank.accounts.Account")

	assert.Same(t, first, second)
	assert.Len(t, cm.Export(), 1)
}

func TestEnsureClass_SharesPackageNodes(t *testing.T) {
	cm := New(nil)

	cm.EnsureClass("bank.accounts.Account")
	cm.EnsureClass("bank.accounts.Ledger")
	cm.EnsureClass("bank.audit.Log")

	roots := cm.Export()
	require.Len(t, roots, 1, "one shared top-level package")
	assert.Equal(t, "bank", roots[0].Name)
	assert.Equal(t, TypePackage, roots[0].Type)

	require.Len(t, roots[0].Children, 2)
	accounts := roots[0].Children[0].(*ExportNode)
	audit := roots[0].Children[1].(*ExportNode)
	assert.Equal(t, "accounts", accounts.Name)
	assert.Equal(t, "audit", audit.Name)
	assert.Len(t, accounts.Children, 2)
	assert.Len(t, audit.Children, 1)
}

func TestEnsureClass_ClassWithoutModulePath(t *testing.T) {
	cm := New(nil)

	cm.EnsureClass("Account")

	roots := cm.Export()
	require.Len(t, roots, 1)
	assert.Equal(t, "Account", roots[0].Name)
	assert.Equal(t, TypeClass, roots[0].Type)
}

func TestRegisterFunction_DeduplicatesByLocation(t *testing.T) {
	cm := New(nil)
	table := cm.EnsureClass("bank.accounts.Account")

	cm.RegisterFunction(table, "bank/accounts.py:20", "withdraw", "")
	cm.RegisterFunction(table, "bank/accounts.py:20", "withdraw", "")

	assert.Equal(t, 1, table.Len())
}

func TestRegisterFunction_PreservesDiscoveryOrder(t *testing.T) {
	cm := New(nil)
	table := cm.EnsureClass("bank.accounts.Account")

	cm.RegisterFunction(table, "bank/accounts.py:12", "__init__", "")
	cm.RegisterFunction(table, "bank/accounts.py:20", "withdraw", "")
	cm.RegisterFunction(table, "bank/accounts.py:30", "deposit", "")

	fns := table.Functions()
	require.Len(t, fns, 3)
	assert.Equal(t, "__init__", fns[0].Name)
	assert.Equal(t, "withdraw", fns[1].Name)
	assert.Equal(t, "deposit", fns[2].Name)
}

func TestRegisterFunction_Labels(t *testing.T) {
	tests := []struct {
		method string
		want   []string
	}{
		{"__init__", []string{"ctor"}},
		{"__setattr__", []string{"setter"}},
		{"__getattr__", []string{"getter"}},
		{"withdraw", nil},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			cm := New(nil)
			table := cm.EnsureClass("bank.accounts.Account")
			cm.RegisterFunction(table, "bank/accounts.py:1", tt.method, "")

			fns := table.Functions()
			require.Len(t, fns, 1)
			assert.Equal(t, tt.want, fns[0].Labels)
			assert.Equal(t, TypeFunction, fns[0].Type)
			assert.False(t, fns[0].Static)
			assert.Equal(t, "bank/accounts.py:1", fns[0].Location)
		})
	}
}

func TestRegisterFunction_PropertyGetterLabel(t *testing.T) {
	intro := &fakeIntrospector{getters: map[string]bool{
		"bank.accounts.Account.balance": true,
	}}
	cm := New(intro)
	table := cm.EnsureClass("bank.accounts.Account")

	cm.RegisterFunction(table, "bank/accounts.py:40", "balance", "bank.accounts.Account")

	fns := table.Functions()
	require.Len(t, fns, 1)
	assert.Equal(t, []string{"getter"}, fns[0].Labels)
}

func TestRegisterFunction_GetterLabelsAreNotDeduplicated(t *testing.T) {
	// __getattr__ that is also a computed property getter on the owner
	// class picks up the label twice; both sources apply independently.
	intro := &fakeIntrospector{getters: map[string]bool{
		"bank.accounts.Account.__getattr__": true,
	}}
	cm := New(intro)
	table := cm.EnsureClass("bank.accounts.Account")

	cm.RegisterFunction(table, "bank/accounts.py:50", "__getattr__", "bank.accounts.Account")

	fns := table.Functions()
	require.Len(t, fns, 1)
	assert.Equal(t, []string{"getter", "getter"}, fns[0].Labels)
}

func TestRegisterFunction_LabelsDerivedOnceAtFirstSight(t *testing.T) {
	intro := &fakeIntrospector{getters: map[string]bool{}}
	cm := New(intro)
	table := cm.EnsureClass("bank.accounts.Account")

	cm.RegisterFunction(table, "bank/accounts.py:40", "balance", "bank.accounts.Account")

	// The class gains a property getter after first sight; the recorded
	// labels must not change.
	intro.getters["bank.accounts.Account.balance"] = true
	cm.RegisterFunction(table, "bank/accounts.py:40", "balance", "bank.accounts.Account")

	fns := table.Functions()
	require.Len(t, fns, 1)
	assert.Nil(t, fns[0].Labels)
}

func TestExport_TopLevelDiscoveryOrder(t *testing.T) {
	cm := New(nil)

	cm.EnsureClass("zebra.Z")
	cm.EnsureClass("alpha.A")

	roots := cm.Export()
	require.Len(t, roots, 2)
	assert.Equal(t, "zebra", roots[0].Name)
	assert.Equal(t, "alpha", roots[1].Name)
}

func TestExport_ClassChildrenAreFunctions(t *testing.T) {
	cm := New(nil)
	table := cm.EnsureClass("bank.Account")
	cm.RegisterFunction(table, "bank.py:12", "__init__", "")

	roots := cm.Export()
	require.Len(t, roots, 1)

	pkg := roots[0]
	require.Len(t, pkg.Children, 1)
	class := pkg.Children[0].(*ExportNode)
	assert.Equal(t, "Account", class.Name)
	assert.Equal(t, TypeClass, class.Type)

	require.Len(t, class.Children, 1)
	fn := class.Children[0].(*Function)
	assert.Equal(t, "__init__", fn.Name)
	assert.Equal(t, []string{"ctor"}, fn.Labels)
}
