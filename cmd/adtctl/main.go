// Command adtctl inspects and edits ADT device-tree blobs.
package main

func main() {
	execute()
}
