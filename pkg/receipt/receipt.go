// Package receipt genera y valida los códigos de recibo de las ventas:
// tokens legibles para validación humana. Son resistentes a colisiones
// (prefijo temporal + sufijo aleatorio) pero no criptográficamente únicos;
// nunca se usan como clave primaria.
package receipt

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generate crea un código de recibo: timestamp en base 36 mayúsculas más
// cuatro caracteres aleatorios, ej: "MF3K2A8B-X4Q9".
func Generate() string {
	prefix := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return prefix + "-" + randomSuffix(4)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Degradar al reloj: el código sigue siendo utilizable para consulta.
		return strings.ToUpper(strconv.FormatInt(time.Now().UnixNano()%1679616, 36))
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(out)
}

// Format devuelve el código listo para mostrar: guiones como espacios,
// "N/A" si está vacío.
func Format(code string) string {
	if code == "" {
		return "N/A"
	}
	return strings.ReplaceAll(code, "-", " ")
}

// Valid informa si el código tiene la forma PREFIJO-SUFIJO en base 36.
func Valid(code string) bool {
	parts := strings.Split(code, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	for _, part := range parts {
		for _, r := range part {
			if !strings.ContainsRune(suffixAlphabet, r) {
				return false
			}
		}
	}
	return true
}
