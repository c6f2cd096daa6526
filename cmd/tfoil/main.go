// Command tfoil elaborates the tfoil board design and simulates its
// bring-up sequence.
package main

func main() {
	Execute()
}
