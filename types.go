package main

import "planctl/internal/models"

// Shorthand aliases so the command files can use the unqualified names; the
// definitions live in internal/models.

type BOMSummary = models.BOMSummary
type BOMTreeNode = models.BOMTreeNode
type FlatRequirement = models.FlatRequirement
type TreeResponse = models.TreeResponse
type Item = models.Item
type ChangeEvent = models.ChangeEvent
