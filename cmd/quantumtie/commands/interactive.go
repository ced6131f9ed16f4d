package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"quantumtie/internal/domain"
)

// extraArgs asks for more parameters to add to the command line.
func extraArgs(p domain.Prompter) ([]string, error) {
	ans, err := p.Ask("add any additional parameters to the initial program call:\n")
	if err != nil {
		return nil, err
	}
	return strings.Fields(ans), nil
}

// choose reads an answer and returns its number (0 when not a number) and
// lower-cased text.
func choose(p domain.Prompter, question string) (int, string, error) {
	ans, err := p.Ask(question)
	if err != nil {
		return 0, "", err
	}
	ans = strings.ToLower(strings.TrimSpace(ans))
	n, _ := strconv.Atoi(ans)
	return n, ans, nil
}

// guidedArgs runs the demo setup dialog and returns the flags it chose.
// An empty answer takes the default at every step.
func guidedArgs(p domain.Prompter, out io.Writer) ([]string, error) {
	fmt.Fprintln(out, "Welcome to the Quantum Raspberry Tie demonstration.\n"+
		" Select your preferences for this run:\n"+
		" Hitting enter will select the default.")

	var args []string
	qubits := 5
	n, _, err := choose(p, "\nHow many qubits in the demo: 5, 12 or 16? (default 5)\n>")
	if err != nil {
		return nil, err
	}
	switch n {
	case 16:
		qubits = 16
		args = append(args, "--file", "16")
	case 12:
		qubits = 12
		args = append(args, "--file", "12")
	}
	fmt.Fprintln(out, "Number of qubits:", qubits)

	layoutName := "q16"
	switch qubits {
	case 5:
		n, ans, err := choose(p, "\nWhich display format would you prefer? (Extra display qubits do not impact simulation)\n"+
			"1: 5-qubit tee, 2: 5-qubit bowtie, 3: 12-qubit hex, 4: 16-qubit rows (default is tee)\n>")
		if err != nil {
			return nil, err
		}
		switch {
		case strings.Contains(ans, "16") || strings.Contains(ans, "rows") || n == 4:
			layoutName = "q16"
		case strings.Contains(ans, "12") || strings.Contains(ans, "hex") || n == 3:
			layoutName = "hex"
		case strings.Contains(ans, "bow") || strings.Contains(ans, "tie") || n == 2:
			layoutName = "bowtie"
		default:
			layoutName = "tee"
		}
	case 12:
		n, ans, err := choose(p, "\nWhich display format would you prefer? (Extra display qubits do not impact simulation)\n"+
			" 1: 12-qubit hex, 2: 16-qubit rows (default is hex)\n>")
		if err != nil {
			return nil, err
		}
		layoutName = "hex"
		if strings.Contains(ans, "16") || strings.Contains(ans, "rows") || n == 2 {
			layoutName = "q16"
		}
	}
	fmt.Fprintln(out, "Display mode selected:", layoutName)
	args = append(args, "--layout", layoutName)

	n, ans, err := choose(p, "\nDo you want to run the demo on a local simulator (recommended) or a real quantum processor backend?\n"+
		" NOTE: Connection to real backend requires stored IBM Quantum credentials.\n"+
		" Running on a real backend may take some time to complete and will only run a single job of the quantum circuit.\n\n"+
		"Do you wish to 1: run a local simulator or 2: connect to a real backend? (default: local)\n>")
	if err != nil {
		return nil, err
	}
	if n == 2 || strings.Contains(ans, "real") {
		return append(args, "--backend", "least"), nil
	}
	if ans == "" {
		return args, nil
	}

	if qubits <= 5 {
		n, ans, err := choose(p, "\nWhat kind of local simulator do you want to run?\n"+
			"1: A simple 5-qubit local noisy model simulator (FakeManilaV2)\n"+
			"2: A basic local Aer simulator (no noise model)\n"+
			"3: An Aer simulator with a noise model based on a real processor\n"+
			"    NOTE: option 3 requires stored IBM Quantum credentials\n\n"+
			"Which simulator model? 1:local 5-qubit, 2:local Aer, 3: local Aer with real noise model\n>")
		if err != nil {
			return nil, err
		}
		switch {
		case n == 3 || strings.Contains(ans, "real"):
			return append(args, "--backend", "aermodel"), nil
		case n == 2 || strings.Contains(ans, "aer"):
			return append(args, "--backend", "aer"), nil
		}
		return append(args, "--local"), nil
	}

	n, ans, err = choose(p, "\nWhat kind of local simulator do you want to run?\n"+
		"1: A basic local Aer simulator (no noise model)\n"+
		"2: An Aer simulator with a noise model based on a real processor\n"+
		"    NOTE: option 2 requires stored IBM Quantum credentials\n\n"+
		"Which simulator model? 1:local Aer, 2: local Aer with real noise model?\n>")
	if err != nil {
		return nil, err
	}
	if n == 2 || strings.Contains(ans, "real") {
		return append(args, "--backend", "aernoise"), nil
	}
	return append(args, "--backend", "aer"), nil
}
