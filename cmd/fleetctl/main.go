// fleetctl tareas de operación: migraciones de esquema y barridos manuales del scheduler.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
