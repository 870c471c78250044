package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
)

// MockStereoProvider is a testify mock of molecule.StereoProvider.
type MockStereoProvider struct {
	mock.Mock
}

func (m *MockStereoProvider) AtomStereo(mol *molecule.Molecule, i int) (molecule.AtomStereo, error) {
	args := m.Called(mol, i)
	return args.Get(0).(molecule.AtomStereo), args.Error(1)
}

func (m *MockStereoProvider) BondStereo(mol *molecule.Molecule, i int) (molecule.BondStereo, error) {
	args := m.Called(mol, i)
	return args.Get(0).(molecule.BondStereo), args.Error(1)
}

var _ molecule.StereoProvider = (*MockStereoProvider)(nil)

//Personal.AI order the ending
