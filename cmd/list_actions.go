package cmd

import (
	"fmt"
	"sort"
)

// ListActionsCmd prints every action service and its methods.
type ListActionsCmd struct{}

func (c *ListActionsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	actions := svc.Actions()
	sort.Slice(actions, func(i, j int) bool { return actions[i].Name() < actions[j].Name() })
	for _, action := range actions {
		fmt.Println(action.Name())
		sigs := append(action.Methods()[:0:0], action.Methods()...)
		sort.Slice(sigs, func(i, j int) bool { return sigs[i].Name < sigs[j].Name })
		for _, sig := range sigs {
			fmt.Printf("  %s\t%s\n", sig.Name, sig.Description)
		}
	}
	return nil
}
