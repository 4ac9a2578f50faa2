// token emite un JWT de operador firmado con JWT_SECRET.
//
// Uso: go run ./cmd/token -operator kim -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/saeron-inventario/pkg/config"
	"github.com/jhoicas/saeron-inventario/pkg/jwt"
)

func main() {
	operator := flag.String("operator", "", "nombre del operador (obligatorio)")
	role := flag.String("role", "staff", "admin | staff")
	exp := flag.Int("exp", 0, "minutos de validez (0 usa JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *operator == "" {
		fmt.Fprintln(os.Stderr, "-operator es obligatorio")
		os.Exit(2)
	}
	if *role != "admin" && *role != "staff" {
		fmt.Fprintf(os.Stderr, "rol inválido %q (admin|staff)\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET vacío: la API no exige tokens")
		os.Exit(1)
	}
	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *operator, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
