package analysis

import "github.com/shopspring/decimal"

// Clasificación de rotación de un producto sobre el año calendario en curso.
const (
	RotationActive   = "Activo"
	RotationStagnant = "Estancado"
	RotationObsolete = "Obsoleto"
)

// RotationResult resultado de clasificar los doce saldos de fin de mes.
type RotationResult struct {
	Rotation        string
	StagnantAllYear bool // saldo idéntico y positivo los doce meses
	HighRotation    bool // el saldo cambió de un mes al siguiente en ≥2 ocasiones
}

// MonthEndBalances acumula los movimientos mensuales sobre el saldo previo al
// año y devuelve los doce saldos de fin de mes.
func MonthEndBalances(preYear decimal.Decimal, monthly [12]decimal.Decimal) [12]decimal.Decimal {
	var balances [12]decimal.Decimal
	running := preYear
	for i := 0; i < 12; i++ {
		running = running.Add(monthly[i])
		balances[i] = running
	}
	return balances
}

// ClassifyRotation clasifica los doce saldos de fin de mes:
//   - idénticos y positivos todo el año → Obsoleto;
//   - últimos tres meses idénticos y positivos (con variación previa) → Estancado;
//   - en cualquier otro caso (incluido saldo cero todo el año) → Activo.
//
// AltaRotacion es independiente de la clasificación: cuenta los meses en los
// que el saldo cambió respecto al anterior.
func ClassifyRotation(balances [12]decimal.Decimal) RotationResult {
	allEqual := true
	changes := 0
	for i := 1; i < len(balances); i++ {
		if !balances[i].Equal(balances[i-1]) {
			allEqual = false
			changes++
		}
	}

	stagnantAllYear := allEqual && balances[0].IsPositive()

	rotation := RotationActive
	switch {
	case stagnantAllYear:
		rotation = RotationObsolete
	case !allEqual &&
		balances[11].Equal(balances[10]) &&
		balances[10].Equal(balances[9]) &&
		balances[11].IsPositive():
		rotation = RotationStagnant
	}

	return RotationResult{
		Rotation:        rotation,
		StagnantAllYear: stagnantAllYear,
		HighRotation:    changes >= 2,
	}
}
