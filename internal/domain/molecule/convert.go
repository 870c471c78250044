package molecule

import (
	"fmt"

	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// FromDTO builds a Molecule from its transfer form and perceives rings.
func FromDTO(dto *mtypes.MoleculeDTO) (*Molecule, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	m := New(dto.ID)
	m.Name = dto.Name
	for i, a := range dto.Atoms {
		stereo, err := ParseAtomStereo(a.Stereo)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMoleculeInvalidFormat, "invalid atom").
				WithDetail(fmt.Sprintf("molecule=%s atom=%d", dto.ID, i))
		}
		m.AddAtom(Atom{
			Symbol:     a.Symbol,
			Charge:     a.Charge,
			Aromatic:   a.Aromatic,
			Stereo:     stereo,
			ImplicitH:  a.ImplicitH,
			MassNumber: a.MassNumber,
			Label:      a.Label,
		})
	}
	for i, b := range dto.Bonds {
		order, err := ParseBondOrder(b.Order)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMoleculeInvalidFormat, "invalid bond").
				WithDetail(fmt.Sprintf("molecule=%s bond=%d", dto.ID, i))
		}
		stereo, err := ParseBondStereo(b.Stereo)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMoleculeInvalidFormat, "invalid bond").
				WithDetail(fmt.Sprintf("molecule=%s bond=%d", dto.ID, i))
		}
		if _, err := m.AddBond(Bond{
			Begin:    b.From,
			End:      b.To,
			Order:    order,
			Aromatic: b.Aromatic || order == OrderAromatic,
			Stereo:   stereo,
		}); err != nil {
			return nil, err
		}
	}
	m.PerceiveRings()
	return m, nil
}

// ToDTO renders m in transfer form.
func ToDTO(m *Molecule) mtypes.MoleculeDTO {
	dto := mtypes.MoleculeDTO{
		ID:    m.ID,
		Name:  m.Name,
		Atoms: make([]mtypes.AtomDTO, 0, len(m.atoms)),
		Bonds: make([]mtypes.BondDTO, 0, len(m.bonds)),
	}
	for _, a := range m.atoms {
		dto.Atoms = append(dto.Atoms, mtypes.AtomDTO{
			Symbol:     a.Symbol,
			Charge:     a.Charge,
			Aromatic:   a.Aromatic,
			Stereo:     a.Stereo.String(),
			ImplicitH:  a.ImplicitH,
			MassNumber: a.MassNumber,
			Label:      a.Label,
		})
	}
	for _, b := range m.bonds {
		dto.Bonds = append(dto.Bonds, mtypes.BondDTO{
			From:     b.Begin,
			To:       b.End,
			Order:    b.Order.String(),
			Aromatic: b.Aromatic,
			Stereo:   b.Stereo.String(),
		})
	}
	return dto
}

//Personal.AI order the ending
