// Command flatbread loads a CSV table through a decorated step and prints readouts about it.
package main

func main() {
	Execute()
}
